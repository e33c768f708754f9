package platform

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/cynageos/calibrate/internal/runtimepath"
)

// Options configure backend construction.
type Options struct {
	HyprctlPath string
	Logger      *slog.Logger
}

// New builds the backend named by kind. KindAuto defers to Detect.
func New(kind string, opts Options) (Backend, error) {
	switch kind {
	case "", KindAuto:
		return Detect(opts)
	case KindHyprctl:
		return NewHyprctl(opts.HyprctlPath, opts.Logger), nil
	case KindHyprlandIPC:
		return NewHyprlandIPC("", opts.Logger)
	case KindX11:
		return NewX11(DetectX11Display(), opts.Logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

// Detect picks a backend for the current session: the Hyprland socket when
// it exists, then hyprctl on PATH, then X11 when an X display can be found.
func Detect(opts Options) (Backend, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if socket, err := runtimepath.HyprlandSocketPath(); err == nil {
		if _, statErr := os.Stat(socket); statErr == nil {
			logger.Debug("backend detected", "backend", KindHyprlandIPC, "socket", socket)
			return NewHyprlandIPC(socket, logger)
		}
	}

	path := opts.HyprctlPath
	if path == "" {
		path = DefaultHyprctlPath
	}
	if resolved, err := exec.LookPath(path); err == nil {
		logger.Debug("backend detected", "backend", KindHyprctl, "path", resolved)
		return NewHyprctl(resolved, logger), nil
	}

	if d := DetectX11Display(); d != "" {
		logger.Debug("backend detected", "backend", KindX11, "display", d)
		return NewX11(d, logger), nil
	}

	return nil, ErrNoBackend
}
