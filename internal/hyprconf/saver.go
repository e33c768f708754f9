package hyprconf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/cynageos/calibrate/internal/display"
)

// Reloader asks the compositor to re-read its configuration.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(summary, body string) error
}

// Preview is the pending change shown before a save is confirmed.
type Preview struct {
	Path    string
	Current string
	Next    string
}

// Changed reports whether saving would alter the file.
func (p Preview) Changed() bool {
	return p.Current != p.Next
}

// Result describes a completed write.
type Result struct {
	Path  string
	Bytes int
	Lines int
}

func (r Result) String() string {
	return fmt.Sprintf("wrote %d monitor line(s), %s, to %s",
		r.Lines, humanize.Bytes(uint64(r.Bytes)), r.Path)
}

// Saver renders a layout, writes it after confirmation and triggers a
// compositor reload.
type Saver struct {
	Path     string
	Format   Format
	Reloader Reloader
	Notifier Notifier
	Logger   *slog.Logger
}

func (s *Saver) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// Preview renders snapshot and pairs it with the current file content.
func (s *Saver) Preview(snapshot []display.Record) (Preview, error) {
	current, err := ReadCurrent(s.Path)
	if err != nil {
		return Preview{}, err
	}
	return Preview{
		Path:    s.Path,
		Current: current,
		Next:    Render(snapshot, s.Format),
	}, nil
}

// Commit overwrites the monitor file with text. Callers invoke it only after
// the user confirmed the preview.
func (s *Saver) Commit(ctx context.Context, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	n, err := Write(s.Path, text)
	if err != nil {
		s.logger().Error("write monitor config", "path", s.Path, "error", err)
		return Result{}, err
	}
	res := Result{Path: s.Path, Bytes: n, Lines: strings.Count(text, "\n")}
	s.logger().Info("monitor config written", "path", s.Path, "bytes", n)

	if s.Notifier != nil {
		if err := s.Notifier.Notify("Display layout saved", res.String()); err != nil {
			s.logger().Warn("notification failed", "error", err)
		}
	}
	return res, nil
}

// Reload signals the compositor. Failures are logged and returned for
// display but never retried.
func (s *Saver) Reload(ctx context.Context) error {
	if s.Reloader == nil {
		return nil
	}
	if err := s.Reloader.Reload(ctx); err != nil {
		s.logger().Warn("compositor reload failed", "error", err)
		return err
	}
	s.logger().Info("compositor reloaded")
	return nil
}
