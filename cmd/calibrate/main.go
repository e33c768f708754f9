package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cynageos/calibrate/internal/config"
	"github.com/cynageos/calibrate/internal/hyprconf"
	"github.com/cynageos/calibrate/internal/notify"
	"github.com/cynageos/calibrate/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "edit":
		os.Exit(runEdit(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: calibrate <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  edit                Open the interactive layout editor")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  monitors list       List connected displays")
	fmt.Fprintln(w, "  monitors save       Write monitor lines (optionally after edits)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'calibrate <command> --help' for command-specific options.")
}

func isHelpArg(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}

// loadConfig loads the config at path, or the default location when empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// newLogger returns a text logger at the configured level, or debug when
// verbose is set.
func newLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openLogFile opens the editor log for appending.
func openLogFile(cfg *config.Config) (*os.File, error) {
	path, err := cfg.LogFilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// newBackend is replaced in tests.
var newBackend = func(cfg *config.Config, logger *slog.Logger) (platform.Backend, error) {
	return platform.New(cfg.Backend, platform.Options{
		HyprctlPath: cfg.HyprctlPath,
		Logger:      logger,
	})
}

// newNotifier is replaced in tests.
var newNotifier = func() (hyprconf.Notifier, func(), error) {
	n, err := notify.New("calibrate")
	if err != nil {
		return nil, func() {}, err
	}
	return n, func() { _ = n.Close() }, nil
}

// newSaver wires the monitor file path, reload backend and notifications.
// output overrides monitor_config when set.
func newSaver(cfg *config.Config, backend platform.Backend, output string, logger *slog.Logger) (*hyprconf.Saver, func(), error) {
	path := output
	if path == "" {
		p, err := cfg.MonitorConfigPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}

	saver := &hyprconf.Saver{
		Path:     path,
		Format:   cfg.Format(),
		Reloader: backend,
		Logger:   logger,
	}

	cleanup := func() {}
	if cfg.Notifications {
		n, closeFn, err := newNotifier()
		if err != nil {
			logger.Warn("desktop notifications unavailable", "error", err)
		} else {
			saver.Notifier = n
			cleanup = closeFn
		}
	}
	return saver, cleanup, nil
}
