package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawCanvas struct {
	Scale    *float64 `yaml:"scale"`
	Width    *float64 `yaml:"width"`
	Height   *float64 `yaml:"height"`
	SnapUnit *int     `yaml:"snap_unit"`
}

type RawKeys struct {
	Step     *float64 `yaml:"step"`
	FastStep *float64 `yaml:"fast_step"`
	Rotate   *string  `yaml:"rotate"`
}

// RawConfig mirrors one YAML file. Nil fields were not set in that file.
type RawConfig struct {
	Include          IncludeList `yaml:"include"`
	Backend          *string     `yaml:"backend"`
	HyprctlPath      *string     `yaml:"hyprctl_path"`
	MonitorConfig    *string     `yaml:"monitor_config"`
	IncludeTransform *bool       `yaml:"include_transform"`
	Canvas           *RawCanvas  `yaml:"canvas"`
	Keys             *RawKeys    `yaml:"keys"`
	Notifications    *bool       `yaml:"notifications"`
	LogLevel         *string     `yaml:"log_level"`
	LogFile          *string     `yaml:"log_file"`
}

// merge returns r with every field set in overlay replaced.
func (r RawConfig) merge(overlay RawConfig) RawConfig {
	out := r
	out.Include = nil

	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.HyprctlPath != nil {
		out.HyprctlPath = overlay.HyprctlPath
	}
	if overlay.MonitorConfig != nil {
		out.MonitorConfig = overlay.MonitorConfig
	}
	if overlay.IncludeTransform != nil {
		out.IncludeTransform = overlay.IncludeTransform
	}
	if overlay.Canvas != nil {
		out.Canvas = mergeCanvas(out.Canvas, overlay.Canvas)
	}
	if overlay.Keys != nil {
		out.Keys = mergeKeys(out.Keys, overlay.Keys)
	}
	if overlay.Notifications != nil {
		out.Notifications = overlay.Notifications
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != nil {
		out.LogFile = overlay.LogFile
	}
	return out
}

func mergeCanvas(base, overlay *RawCanvas) *RawCanvas {
	out := RawCanvas{}
	if base != nil {
		out = *base
	}
	if overlay.Scale != nil {
		out.Scale = overlay.Scale
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.SnapUnit != nil {
		out.SnapUnit = overlay.SnapUnit
	}
	return &out
}

func mergeKeys(base, overlay *RawKeys) *RawKeys {
	out := RawKeys{}
	if base != nil {
		out = *base
	}
	if overlay.Step != nil {
		out.Step = overlay.Step
	}
	if overlay.FastStep != nil {
		out.FastStep = overlay.FastStep
	}
	if overlay.Rotate != nil {
		out.Rotate = overlay.Rotate
	}
	return &out
}
