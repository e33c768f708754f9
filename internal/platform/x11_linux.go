//go:build linux

package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/x11"
)

// X11 enumerates displays through XRandR. It has no reload signal.
type X11 struct {
	// Display is the X display to connect to; empty means $DISPLAY.
	Display string
	Logger  *slog.Logger
}

var _ Backend = (*X11)(nil)

// NewX11 returns an X11 backend. A connection is opened per enumeration.
func NewX11(displayName string, logger *slog.Logger) *X11 {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &X11{Display: displayName, Logger: logger}
}

func (b *X11) Name() string { return KindX11 }

// Monitors opens a fresh X11 connection and lists active CRTCs.
func (b *X11) Monitors(ctx context.Context) ([]display.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	conn, err := x11.NewConnection(b.Display)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to X11 %s: %v", ErrEnumeration, b.Display, err)
	}
	defer conn.Close()

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnumeration, err)
	}

	records := make([]display.Record, 0, len(monitors))
	for _, m := range monitors {
		records = append(records, display.Record{
			Name:     m.Name,
			Width:    m.Width,
			Height:   m.Height,
			X:        m.X,
			Y:        m.Y,
			Rotation: display.Rotation(m.Rotation),
		})
	}
	b.Logger.Debug("enumerated displays", "backend", b.Name(), "count", len(records))
	return records, nil
}

// Reload is not available on X11.
func (b *X11) Reload(context.Context) error {
	return ErrReloadUnsupported
}
