package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := filepath.Join(os.TempDir(), fmt.Sprintf("calibrate-runtime-%d", os.Getuid()))
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestLogPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	p, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath() error: %v", err)
	}
	if !strings.HasSuffix(p, "/calibrate.log") {
		t.Fatalf("LogPath() = %q, missing suffix", p)
	}
}

func TestHyprlandSocketPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")
	if _, err := HyprlandSocketPath(); !errors.Is(err, ErrNoHyprlandInstance) {
		t.Fatalf("expected ErrNoHyprlandInstance, got %v", err)
	}

	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "abc_123")
	got, err := HyprlandSocketPath()
	if err != nil {
		t.Fatalf("HyprlandSocketPath() error: %v", err)
	}
	want := filepath.Join(td, "hypr", "abc_123", ".socket.sock")
	if got != want {
		t.Fatalf("HyprlandSocketPath() = %q, want %q", got, want)
	}
}

func TestHyprlandSocketPath_LegacyLocation(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "old")

	legacy := t.TempDir()
	prev := legacyHyprDir
	legacyHyprDir = legacy
	defer func() { legacyHyprDir = prev }()

	sock := filepath.Join(legacy, "old", ".socket.sock")
	if err := os.MkdirAll(filepath.Dir(sock), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(sock, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := HyprlandSocketPath()
	if err != nil {
		t.Fatalf("HyprlandSocketPath() error: %v", err)
	}
	if got != sock {
		t.Fatalf("HyprlandSocketPath() = %q, want %q", got, sock)
	}
}
