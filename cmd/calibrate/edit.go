package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/tui"
)

func runEdit(args []string) int {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/calibrate/config.yaml)")
	output := fs.String("output", "", "Monitor config to write (default: monitor_config)")
	verbose := fs.Bool("v", false, "Debug logging")

	if isHelpArg(args) {
		fmt.Fprintln(os.Stderr, "Usage: calibrate edit [--path PATH] [--output FILE] [-v]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Arrange displays on a scaled canvas and write monitor lines.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings (Layout tab):")
		fmt.Fprintln(os.Stderr, "  mouse drag        Move a display; snaps to the grid on release")
		fmt.Fprintln(os.Stderr, "  ←/→/↑/↓           Move the focused display by keys.step")
		fmt.Fprintln(os.Stderr, "  shift+arrows      Move by keys.fast_step")
		fmt.Fprintln(os.Stderr, "  r                 Rotate the focused display (keys.rotate)")
		fmt.Fprintln(os.Stderr, "  n/N, alt+arrows   Change focus")
		fmt.Fprintln(os.Stderr, "  x                 Reset to the enumerated layout")
		fmt.Fprintln(os.Stderr, "  ctrl+s            Review and save")
		fmt.Fprintln(os.Stderr, "  tab, 1-3          Switch tabs")
		fmt.Fprintln(os.Stderr, "  q, ctrl+c         Quit")
		return 0
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	// The terminal belongs to the editor; logs go to a file.
	logFile, err := openLogFile(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg, *verbose)

	backend, err := newBackend(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	records, err := backend.Monitors(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Info("editor starting", "backend", backend.Name(), "displays", len(records))

	saver, cleanup, err := newSaver(cfg, backend, *output, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	err = tui.Run(tui.Options{
		Config:     cfg,
		ConfigPath: *path,
		Registry:   display.NewRegistry(records),
		Backend:    backend.Name(),
		Saver:      saver,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
