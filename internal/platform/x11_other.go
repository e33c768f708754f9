//go:build !linux

package platform

import (
	"context"
	"log/slog"

	"github.com/cynageos/calibrate/internal/display"
)

// X11 is only available on linux.
type X11 struct {
	Display string
	Logger  *slog.Logger
}

// NewX11 returns a backend that always fails to enumerate.
func NewX11(displayName string, logger *slog.Logger) *X11 {
	return &X11{Display: displayName, Logger: logger}
}

func (b *X11) Name() string { return KindX11 }

func (b *X11) Monitors(context.Context) ([]display.Record, error) {
	return nil, ErrEnumeration
}

func (b *X11) Reload(context.Context) error {
	return ErrReloadUnsupported
}
