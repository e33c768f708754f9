package platform

import (
	"context"
	"errors"

	"github.com/cynageos/calibrate/internal/display"
)

var (
	// ErrEnumeration reports that the backend could not list displays at all.
	ErrEnumeration = errors.New("display enumeration failed")
	// ErrReloadUnsupported is returned by backends that have no reload signal.
	ErrReloadUnsupported = errors.New("reload not supported by backend")
	// ErrUnknownBackend is returned by New for an unrecognised kind.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrNoBackend is returned by Detect when nothing usable is found.
	ErrNoBackend = errors.New("no display backend available")
)

// Backend kinds accepted by New.
const (
	KindAuto        = "auto"
	KindHyprctl     = "hyprctl"
	KindHyprlandIPC = "hyprland-ipc"
	KindX11         = "x11"
)

// Kinds lists the accepted backend kinds.
func Kinds() []string {
	return []string{KindAuto, KindHyprctl, KindHyprlandIPC, KindX11}
}

// Backend enumerates physical displays and signals the compositor to re-read
// its configuration.
type Backend interface {
	Name() string
	Monitors(ctx context.Context) ([]display.Record, error)
	Reload(ctx context.Context) error
}
