package hyprconf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cynageos/calibrate/internal/display"
)

type fakeReloader struct {
	calls int
	err   error
}

func (f *fakeReloader) Reload(context.Context) error {
	f.calls++
	return f.err
}

type fakeNotifier struct {
	summaries []string
}

func (f *fakeNotifier) Notify(summary, body string) error {
	f.summaries = append(f.summaries, summary)
	return errors.New("no bus")
}

func TestWrite_OverwritesInsteadOfAppending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hypr", "monitors.conf")

	if _, err := Write(path, "monitor = OLD-1, 800x600, 0x0, 1\n"); err != nil {
		t.Fatalf("first write: %v", err)
	}
	n, err := Write(path, "monitor = DP-1, 1920x1080, 0x0, 1\n")
	if err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if strings.Contains(string(data), "OLD-1") {
		t.Fatalf("old content survived: %q", data)
	}
	if n != len(data) {
		t.Fatalf("reported %d bytes, file has %d", n, len(data))
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWrite_FollowsSymlinkAndKeepsMode(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "dotfiles", "monitors.conf")
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(target, []byte("old\n"), 0600); err != nil {
		t.Fatalf("write target: %v", err)
	}
	link := filepath.Join(dir, "hypr", "monitors.conf")
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Symlink("../dotfiles/monitors.conf", link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	text := "monitor = DP-1, 1920x1080, 0x0, 1\n"
	if _, err := Write(link, text); err != nil {
		t.Fatalf("Write: %v", err)
	}

	info, err := os.Lstat(link)
	if err != nil {
		t.Fatalf("lstat link: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("link was replaced by a regular file")
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if string(data) != text {
		t.Fatalf("target content = %q, want %q", data, text)
	}
	st, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat target: %v", err)
	}
	if st.Mode().Perm() != 0600 {
		t.Fatalf("target mode = %v, want 0600", st.Mode().Perm())
	}
}

func TestWrite_DanglingSymlinkCreatesTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.conf")
	link := filepath.Join(dir, "monitors.conf")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if _, err := Write(link, "monitor = DP-1, 1x1, 0x0, 1\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if info, err := os.Lstat(link); err != nil || info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("link not kept: %v %v", info, err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("target not created: %v", err)
	}
}

func TestWrite_ErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Write(filepath.Join(blocker, "monitors.conf"), "x\n"); err == nil {
		t.Fatalf("expected error when parent is a file")
	}
}

func TestSaver_PreviewCommitReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitors.conf")
	reloader := &fakeReloader{err: errors.New("hyprctl missing")}
	notifier := &fakeNotifier{}
	s := &Saver{Path: path, Format: DefaultFormat(), Reloader: reloader, Notifier: notifier}

	snap := []display.Record{{Name: "DP-1", Width: 1920, Height: 1080}}
	p, err := s.Preview(snap)
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if p.Current != "" || !p.Changed() {
		t.Fatalf("missing file should preview as new content: %+v", p)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Preview must not write the file")
	}

	res, err := s.Commit(context.Background(), p.Next)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.Lines != 1 || res.Bytes != len(p.Next) {
		t.Fatalf("unexpected result %+v", res)
	}
	if !strings.Contains(res.String(), path) {
		t.Fatalf("result string should name the path: %q", res.String())
	}
	if len(notifier.summaries) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.summaries))
	}

	if err := s.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload error to be reported")
	}
	if reloader.calls != 1 {
		t.Fatalf("reload must not be retried, got %d calls", reloader.calls)
	}

	again, _ := s.Preview(snap)
	if again.Changed() {
		t.Fatalf("preview after commit should be unchanged")
	}
}

func TestSaver_CommitHonoursCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitors.conf")
	s := &Saver{Path: path, Format: Legacy()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Commit(ctx, "monitor = DP-1, 1x1, 0x0, 1\n"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("cancelled commit must not write")
	}
}
