package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thiagokokada/hyprland-go"

	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/runtimepath"
)

// HyprlandIPC talks to the Hyprland request socket directly.
type HyprlandIPC struct {
	Socket string
	Logger *slog.Logger
	client *hyprland.RequestClient
}

var _ Backend = (*HyprlandIPC)(nil)

// NewHyprlandIPC connects to socket, or to the socket of the running instance
// when socket is empty.
func NewHyprlandIPC(socket string, logger *slog.Logger) (*HyprlandIPC, error) {
	if socket == "" {
		p, err := runtimepath.HyprlandSocketPath()
		if err != nil {
			return nil, err
		}
		socket = p
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HyprlandIPC{
		Socket: socket,
		Logger: logger,
		client: hyprland.NewClient(socket),
	}, nil
}

func (h *HyprlandIPC) Name() string { return KindHyprlandIPC }

// Monitors requests the monitor list over the socket.
func (h *HyprlandIPC) Monitors(ctx context.Context) ([]display.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	monitors, err := h.client.Monitors()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEnumeration, h.Socket, err)
	}

	records := make([]display.Record, 0, len(monitors))
	for _, m := range monitors {
		records = append(records, recordFromHyprland(m))
	}
	h.Logger.Debug("enumerated displays", "backend", h.Name(), "count", len(records))
	return records, nil
}

// Reload asks Hyprland to re-read its configuration.
func (h *HyprlandIPC) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := h.client.Reload(); err != nil {
		return fmt.Errorf("hyprland reload: %w", err)
	}
	return nil
}

func recordFromHyprland(m hyprland.Monitor) display.Record {
	return display.Record{
		Name:     m.Name,
		Width:    m.Width,
		Height:   m.Height,
		X:        m.X,
		Y:        m.Y,
		Rotation: display.Rotation(transformRotation(m.Transform)),
	}
}

// transformRotation maps a wl_output transform (0..7) to a quarter-turn
// index. Flipped variants keep their rotation.
func transformRotation(t int) int {
	if t < 0 || t > 7 {
		return 0
	}
	return t % 4
}
