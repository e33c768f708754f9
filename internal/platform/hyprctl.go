package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/cynageos/calibrate/internal/display"
)

// DefaultHyprctlPath is looked up on PATH.
const DefaultHyprctlPath = "hyprctl"

const hyprctlTimeout = 5 * time.Second

// Hyprctl enumerates displays by running `hyprctl monitors all` and parsing
// its text output.
type Hyprctl struct {
	Path   string
	Logger *slog.Logger
}

var _ Backend = (*Hyprctl)(nil)

// NewHyprctl returns a backend that runs the hyprctl binary at path.
func NewHyprctl(path string, logger *slog.Logger) *Hyprctl {
	if path == "" {
		path = DefaultHyprctlPath
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hyprctl{Path: path, Logger: logger}
}

func (h *Hyprctl) Name() string { return KindHyprctl }

// Monitors runs the enumeration command. A failure to start it, or a
// non-zero exit with no output, is an ErrEnumeration. A non-zero exit that
// still produced output is parsed and logged as a warning.
func (h *Hyprctl) Monitors(ctx context.Context) ([]display.Record, error) {
	out, err := h.run(ctx, "monitors", "all")
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || strings.TrimSpace(string(out)) == "" {
			return nil, fmt.Errorf("%w: %s monitors all: %v", ErrEnumeration, h.Path, err)
		}
		h.Logger.Warn("hyprctl exited with error, using its output anyway",
			"exit_code", exitErr.ExitCode())
	}

	records := display.Parse(string(out))
	h.Logger.Debug("enumerated displays", "backend", h.Name(), "count", len(records))
	return records, nil
}

// Reload runs `hyprctl reload`.
func (h *Hyprctl) Reload(ctx context.Context) error {
	out, err := h.run(ctx, "reload")
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s reload: %w: %s", h.Path, err, msg)
		}
		return fmt.Errorf("%s reload: %w", h.Path, err)
	}
	return nil
}

func (h *Hyprctl) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, hyprctlTimeout)
	defer cancel()
	return exec.CommandContext(ctx, h.Path, args...).Output()
}
