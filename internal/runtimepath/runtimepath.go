// Package runtimepath locates per-session files: the editor log and the
// Hyprland request socket.
package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrNoHyprlandInstance is returned when HYPRLAND_INSTANCE_SIGNATURE is unset.
var ErrNoHyprlandInstance = errors.New("HYPRLAND_INSTANCE_SIGNATURE is not set")

// legacyHyprDir is where Hyprland kept its sockets before moving them under
// XDG_RUNTIME_DIR.
var legacyHyprDir = "/tmp/hypr"

// Dir returns $XDG_RUNTIME_DIR, then /run/user/<uid> if it exists, then a
// private directory under /tmp that is created on demand.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := strconv.Itoa(os.Getuid())
	if info, err := os.Stat(filepath.Join("/run/user", uid)); err == nil && info.IsDir() {
		return filepath.Join("/run/user", uid), nil
	}

	dir := filepath.Join(os.TempDir(), "calibrate-runtime-"+uid)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return dir, nil
}

// LogPath returns the default editor log file.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "calibrate.log"), nil
}

// HyprlandSocketPath returns the request socket of the running Hyprland
// instance, <runtime>/hypr/<signature>/.socket.sock. When that socket is
// absent but the pre-0.40 location /tmp/hypr/<signature> has one, the
// latter is returned.
func HyprlandSocketPath() (string, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", ErrNoHyprlandInstance
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	current := filepath.Join(dir, "hypr", sig, ".socket.sock")
	if _, err := os.Stat(current); err != nil {
		legacy := filepath.Join(legacyHyprDir, sig, ".socket.sock")
		if _, err := os.Stat(legacy); err == nil {
			return legacy, nil
		}
	}
	return current, nil
}
