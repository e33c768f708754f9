package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// stubX11Discovery points socket scanning at dir and replaces loginctl with
// run. It returns a restore func.
func stubX11Discovery(dir string, run func(string, ...string) (string, error)) func() {
	origDir := x11SocketDir
	origRun := runCommandOutputFn
	x11SocketDir = dir
	runCommandOutputFn = run
	return func() {
		x11SocketDir = origDir
		runCommandOutputFn = origRun
	}
}

func noLoginctl(string, ...string) (string, error) {
	return "", errors.New("loginctl unavailable")
}

func TestDetectX11Display_PrefersEnv(t *testing.T) {
	restore := stubX11Discovery(t.TempDir(), noLoginctl)
	defer restore()

	t.Setenv("DISPLAY", ":7")
	if got := DetectX11Display(); got != ":7" {
		t.Fatalf("DetectX11Display = %q, want :7", got)
	}
}

func TestDetectX11Display_UsesLoginSession(t *testing.T) {
	restore := stubX11Discovery(t.TempDir(), func(name string, args ...string) (string, error) {
		joined := strings.Join(args, " ")
		switch {
		case strings.HasPrefix(joined, "list-sessions"):
			return "4 " + strconv.Itoa(os.Getuid()) + " user seat0\n", nil
		case strings.Contains(joined, "-p Display"):
			return ":3\n", nil
		case strings.Contains(joined, "-p Leader"):
			return "0\n", nil
		}
		return "", errors.New("unexpected")
	})
	defer restore()

	t.Setenv("DISPLAY", "")
	if got := DetectX11Display(); got != ":3" {
		t.Fatalf("DetectX11Display = %q, want :3", got)
	}
}

func TestDetectX11Display_FallsBackToSockets(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"X0", "X2", "not-a-display"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	restore := stubX11Discovery(dir, noLoginctl)
	defer restore()

	t.Setenv("DISPLAY", "")
	if got := DetectX11Display(); got != ":2" {
		t.Fatalf("DetectX11Display = %q, want :2", got)
	}
}

func TestDetectDisplayFromSockets_MissingDir(t *testing.T) {
	if got := detectDisplayFromSockets(filepath.Join(t.TempDir(), "missing")); got != "" {
		t.Fatalf("missing dir should yield no display, got %q", got)
	}
}

func TestParseLoginctlSessions(t *testing.T) {
	out := strings.Join([]string{
		"1 1000 george seat0",
		"2 1001 alice seat0",
		"3 1000 george seat1",
		"",
	}, "\n")
	got := parseLoginctlSessions(out, "1000")
	if len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Fatalf("parseLoginctlSessions = %v, want [1 3]", got)
	}
}

func TestReadProcEnviron(t *testing.T) {
	orig := readFileFn
	defer func() { readFileFn = orig }()
	readFileFn = func(path string) ([]byte, error) {
		if path != filepath.Join("/proc", "42", "environ") {
			t.Fatalf("unexpected path %q", path)
		}
		return []byte("DISPLAY=:9\x00HOME=/home/u\x00broken\x00"), nil
	}

	env, err := readProcEnviron("42")
	if err != nil {
		t.Fatalf("readProcEnviron: %v", err)
	}
	if env["DISPLAY"] != ":9" || env["HOME"] != "/home/u" || len(env) != 2 {
		t.Fatalf("env = %v", env)
	}
}
