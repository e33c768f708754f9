// Package tui is the interactive layout editor: a canvas of draggable
// displays, a display list and a settings form, built on bubbletea.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/cynageos/calibrate/internal/config"
	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/hyprconf"
)

// ErrNotTerminal is returned when stdin or stdout is not a TTY.
var ErrNotTerminal = errors.New("tui requires an interactive terminal (stdin/stdout must be TTYs)")

// Options configure an editor session.
type Options struct {
	Config     *config.Config
	ConfigPath string
	Registry   *display.Registry
	Backend    string
	Saver      *hyprconf.Saver
	Logger     *slog.Logger
}

// Run starts the editor and blocks until the user quits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Registry == nil || opts.Registry.Len() == 0 {
		return fmt.Errorf("no displays to edit")
	}

	p := tea.NewProgram(newModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	if m, ok := final.(model); ok && m.dirty() {
		opts.logger().Info("editor closed with unsaved changes")
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
