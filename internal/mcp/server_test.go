package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cynageos/calibrate/internal/canvas"
	"github.com/cynageos/calibrate/internal/config"
	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/hyprconf"
)

type fakeBackend struct {
	records   []display.Record
	err       error
	reloads   int
	reloadErr error
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Monitors(context.Context) ([]display.Record, error) {
	return append([]display.Record(nil), f.records...), f.err
}

func (f *fakeBackend) Reload(context.Context) error {
	f.reloads++
	return f.reloadErr
}

func newTestServer(t *testing.T) (*Server, *fakeBackend, string) {
	t.Helper()
	backend := &fakeBackend{records: []display.Record{
		{Name: "DP-2", Width: 1920, Height: 1080, X: 1920, Y: 0},
		{Name: "DP-1", Width: 1920, Height: 1080, X: 0, Y: 0},
	}}
	path := filepath.Join(t.TempDir(), "monitors.conf")
	cfg := config.DefaultConfig()
	saver := &hyprconf.Saver{Path: path, Format: cfg.Format(), Reloader: backend}
	return NewServer(cfg, backend, saver, nil), backend, path
}

func TestListDisplays(t *testing.T) {
	s, _, path := newTestServer(t)

	_, out, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{})
	if err != nil {
		t.Fatalf("list_displays: %v", err)
	}
	if out.Backend != "fake" || out.ConfigPath != path {
		t.Fatalf("unexpected header %+v", out)
	}
	if len(out.Displays) != 2 || out.Displays[0].Name != "DP-1" {
		t.Fatalf("displays should be ordered by position, got %+v", out.Displays)
	}
	if want := "monitor = DP-2, 1920x1080, 1920x0, 1, transform, 0"; out.Displays[1].Line != want {
		t.Fatalf("line = %q, want %q", out.Displays[1].Line, want)
	}
}

func TestListDisplays_BackendError(t *testing.T) {
	s, backend, _ := newTestServer(t)
	backend.err = errors.New("socket closed")

	if _, _, err := s.handleListDisplays(context.Background(), nil, ListDisplaysInput{}); err == nil {
		t.Fatal("expected backend error")
	}
}

func TestPreviewLayout_AppliesEditsWithoutWriting(t *testing.T) {
	s, backend, path := newTestServer(t)

	_, out, err := s.handlePreviewLayout(context.Background(), nil, LayoutInput{
		Moves:     []Move{{Name: "DP-2", X: 1950, Y: 120}},
		Rotations: []Rotate{{Name: "DP-1", Degrees: 270}},
	})
	if err != nil {
		t.Fatalf("preview_layout: %v", err)
	}
	want := "monitor = DP-1, 1920x1080, 0x0, 1, transform, 3\n" +
		"monitor = DP-2, 1920x1080, 1950x120, 1, transform, 0\n"
	if out.Text != want {
		t.Fatalf("text = %q, want %q", out.Text, want)
	}
	if !out.Changed || out.Current != "" {
		t.Fatalf("preview against a missing file should be changed, got %+v", out)
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("unexpected warnings %v", out.Warnings)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("preview must not write, stat err=%v", err)
	}
	if backend.reloads != 0 {
		t.Fatalf("preview must not reload")
	}
}

func TestPreviewLayout_LegacyAndClampWarnings(t *testing.T) {
	s, _, _ := newTestServer(t)
	legacy := true

	_, out, err := s.handlePreviewLayout(context.Background(), nil, LayoutInput{
		Moves:  []Move{{Name: "DP-1", X: -500, Y: 0}},
		Legacy: &legacy,
	})
	if err != nil {
		t.Fatalf("preview_layout: %v", err)
	}
	if strings.Contains(out.Text, "transform") {
		t.Fatalf("legacy output must omit transform: %q", out.Text)
	}
	if len(out.Warnings) != 1 || !strings.Contains(out.Warnings[0], "clamped to 0,0") {
		t.Fatalf("expected one clamp warning, got %v", out.Warnings)
	}
}

func TestPreviewLayout_Errors(t *testing.T) {
	s, _, _ := newTestServer(t)

	_, _, err := s.handlePreviewLayout(context.Background(), nil, LayoutInput{
		Moves: []Move{{Name: "HDMI-A-9", X: 0, Y: 0}},
	})
	if !errors.Is(err, canvas.ErrUnknownDisplay) {
		t.Fatalf("expected ErrUnknownDisplay, got %v", err)
	}

	_, _, err = s.handlePreviewLayout(context.Background(), nil, LayoutInput{
		Rotations: []Rotate{{Name: "DP-1", Degrees: 45}},
	})
	if err == nil || !strings.Contains(err.Error(), "degrees") {
		t.Fatalf("expected degrees error, got %v", err)
	}
}

func TestSaveLayout_RequiresConfirm(t *testing.T) {
	s, backend, path := newTestServer(t)

	_, _, err := s.handleSaveLayout(context.Background(), nil, SaveLayoutInput{
		Moves: []Move{{Name: "DP-2", X: 2000, Y: 0}},
	})
	if !errors.Is(err, errNotConfirmed) {
		t.Fatalf("expected errNotConfirmed, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("unconfirmed save must not write")
	}
	if backend.reloads != 0 {
		t.Fatalf("unconfirmed save must not reload")
	}
}

func TestSaveLayout_WritesAndReloadsOnce(t *testing.T) {
	s, backend, path := newTestServer(t)

	_, out, err := s.handleSaveLayout(context.Background(), nil, SaveLayoutInput{
		Moves:   []Move{{Name: "DP-2", X: 2000, Y: 0}},
		Confirm: true,
	})
	if err != nil {
		t.Fatalf("save_layout: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "monitor = DP-2, 1920x1080, 2000x0, 1, transform, 0") {
		t.Fatalf("unexpected file content %q", data)
	}
	if out.Bytes != len(data) || out.Lines != 2 || !out.Reloaded {
		t.Fatalf("unexpected output %+v", out)
	}
	if backend.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", backend.reloads)
	}
}

func TestSaveLayout_ReloadFailureIsReported(t *testing.T) {
	s, backend, path := newTestServer(t)
	backend.reloadErr = errors.New("hyprctl: no instance")

	_, out, err := s.handleSaveLayout(context.Background(), nil, SaveLayoutInput{Confirm: true})
	if err != nil {
		t.Fatalf("reload failure must not fail the save: %v", err)
	}
	if out.Reloaded || !strings.Contains(out.ReloadError, "no instance") {
		t.Fatalf("unexpected output %+v", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file should be written: %v", err)
	}
	if backend.reloads != 1 {
		t.Fatalf("reload must not be retried, got %d calls", backend.reloads)
	}
}
