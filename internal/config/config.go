package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cynageos/calibrate/internal/canvas"
	"github.com/cynageos/calibrate/internal/hyprconf"
	"github.com/cynageos/calibrate/internal/interaction"
	"github.com/cynageos/calibrate/internal/platform"
	"github.com/cynageos/calibrate/internal/runtimepath"
)

// CanvasConfig sizes the editing canvas.
type CanvasConfig struct {
	Scale    float64 `yaml:"scale"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	SnapUnit int     `yaml:"snap_unit"`
}

// KeysConfig controls keyboard moves.
type KeysConfig struct {
	Step     float64 `yaml:"step"`
	FastStep float64 `yaml:"fast_step"`
	Rotate   string  `yaml:"rotate"`
}

// Config is the effective configuration.
type Config struct {
	Backend          string       `yaml:"backend"`
	HyprctlPath      string       `yaml:"hyprctl_path,omitempty"`
	MonitorConfig    string       `yaml:"monitor_config"`
	IncludeTransform bool         `yaml:"include_transform"`
	Canvas           CanvasConfig `yaml:"canvas"`
	Keys             KeysConfig   `yaml:"keys"`
	Notifications    bool         `yaml:"notifications"`
	LogLevel         string       `yaml:"log_level"`
	LogFile          string       `yaml:"log_file,omitempty"`
}

func DefaultConfig() *Config {
	geom := canvas.DefaultGeometry()
	steps := interaction.DefaultKeySteps()
	return &Config{
		Backend:          platform.KindAuto,
		MonitorConfig:    "~/.config/hypr/monitors.conf",
		IncludeTransform: true,
		Canvas: CanvasConfig{
			Scale:    geom.Scale,
			Width:    geom.Width,
			Height:   geom.Height,
			SnapUnit: geom.SnapUnit,
		},
		Keys: KeysConfig{
			Step:     steps.Step,
			FastStep: steps.FastStep,
			Rotate:   "r",
		},
		Notifications: true,
		LogLevel:      "info",
	}
}

// Geometry returns the canvas geometry.
func (c *Config) Geometry() canvas.Geometry {
	return canvas.Geometry{
		Scale:    c.Canvas.Scale,
		Width:    c.Canvas.Width,
		Height:   c.Canvas.Height,
		SnapUnit: c.Canvas.SnapUnit,
	}
}

// KeySteps returns the keyboard move distances.
func (c *Config) KeySteps() interaction.KeySteps {
	return interaction.KeySteps{Step: c.Keys.Step, FastStep: c.Keys.FastStep}
}

// Format returns the monitor line format.
func (c *Config) Format() hyprconf.Format {
	return hyprconf.Format{IncludeTransform: c.IncludeTransform}
}

// MonitorConfigPath returns monitor_config with a leading ~ expanded.
func (c *Config) MonitorConfigPath() (string, error) {
	return expandHome(c.MonitorConfig)
}

// LogFilePath returns log_file, or calibrate.log in the runtime dir.
func (c *Config) LogFilePath() (string, error) {
	if strings.TrimSpace(c.LogFile) == "" {
		return runtimepath.LogPath()
	}
	return expandHome(c.LogFile)
}

// SlogLevel maps log_level to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Save writes the configuration to the standard location.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if !slices.Contains(platform.Kinds(), c.Backend) {
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: %s", strings.Join(platform.Kinds(), ", "))}
	}
	if strings.TrimSpace(c.MonitorConfig) == "" {
		return &ValidationError{Path: "monitor_config", Err: fmt.Errorf("monitor_config is required")}
	}
	if c.Canvas.Scale <= 0 || c.Canvas.Scale > 1 {
		return &ValidationError{Path: "canvas.scale", Err: fmt.Errorf("scale must be in (0, 1]")}
	}
	if c.Canvas.Width <= 0 {
		return &ValidationError{Path: "canvas.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Canvas.Height <= 0 {
		return &ValidationError{Path: "canvas.height", Err: fmt.Errorf("height must be > 0")}
	}
	if c.Canvas.SnapUnit <= 0 {
		return &ValidationError{Path: "canvas.snap_unit", Err: fmt.Errorf("snap_unit must be > 0")}
	}
	if c.Keys.Step <= 0 {
		return &ValidationError{Path: "keys.step", Err: fmt.Errorf("step must be > 0")}
	}
	if c.Keys.FastStep <= 0 {
		return &ValidationError{Path: "keys.fast_step", Err: fmt.Errorf("fast_step must be > 0")}
	}
	if strings.TrimSpace(c.Keys.Rotate) == "" {
		return &ValidationError{Path: "keys.rotate", Err: fmt.Errorf("rotate key is required")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	if warnings := c.validationWarnings(); len(warnings) > 0 {
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
	}
	return nil
}

func (c *Config) validationWarnings() []string {
	var warnings []string
	if c.Keys.FastStep <= c.Keys.Step {
		warnings = append(warnings, fmt.Sprintf("keys.fast_step (%g) is not larger than keys.step (%g)", c.Keys.FastStep, c.Keys.Step))
	}
	if c.Canvas.Scale*float64(c.Canvas.SnapUnit) < 1 {
		warnings = append(warnings, "canvas snap step is smaller than one canvas unit; drags will barely snap")
	}
	return warnings
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
