package config

import (
	"fmt"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if raw.HyprctlPath != nil {
		cfg.HyprctlPath = *raw.HyprctlPath
	}
	if raw.MonitorConfig != nil {
		cfg.MonitorConfig = *raw.MonitorConfig
	}
	if raw.IncludeTransform != nil {
		cfg.IncludeTransform = *raw.IncludeTransform
	}
	if c := raw.Canvas; c != nil {
		if c.Scale != nil {
			cfg.Canvas.Scale = *c.Scale
		}
		if c.Width != nil {
			cfg.Canvas.Width = *c.Width
		}
		if c.Height != nil {
			cfg.Canvas.Height = *c.Height
		}
		if c.SnapUnit != nil {
			cfg.Canvas.SnapUnit = *c.SnapUnit
		}
	}
	if k := raw.Keys; k != nil {
		if k.Step != nil {
			cfg.Keys.Step = *k.Step
		}
		if k.FastStep != nil {
			cfg.Keys.FastStep = *k.FastStep
		}
		if k.Rotate != nil {
			cfg.Keys.Rotate = *k.Rotate
		}
	}
	if raw.Notifications != nil {
		cfg.Notifications = *raw.Notifications
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}

	return cfg, nil
}
