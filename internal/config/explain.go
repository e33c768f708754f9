package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	backend
//	hyprctl_path
//	monitor_config
//	include_transform
//	canvas, canvas.scale, canvas.width, canvas.height, canvas.snap_unit
//	keys, keys.step, keys.fast_step, keys.rotate
//	notifications
//	log_level
//	log_file
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return v, nil
	}

	switch parts[0] {
	case "backend":
		return leaf(cfg.Backend)
	case "hyprctl_path":
		return leaf(cfg.HyprctlPath)
	case "monitor_config":
		return leaf(cfg.MonitorConfig)
	case "include_transform":
		return leaf(cfg.IncludeTransform)
	case "notifications":
		return leaf(cfg.Notifications)
	case "log_level":
		return leaf(cfg.LogLevel)
	case "log_file":
		return leaf(cfg.LogFile)
	case "canvas":
		if len(parts) == 1 {
			return cfg.Canvas, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "scale":
			return cfg.Canvas.Scale, nil
		case "width":
			return cfg.Canvas.Width, nil
		case "height":
			return cfg.Canvas.Height, nil
		case "snap_unit":
			return cfg.Canvas.SnapUnit, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	case "keys":
		if len(parts) == 1 {
			return cfg.Keys, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "step":
			return cfg.Keys.Step, nil
		case "fast_step":
			return cfg.Keys.FastStep, nil
		case "rotate":
			return cfg.Keys.Rotate, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
