// Package hyprconf reads and writes compositor monitor lines of the form
//
//	monitor = DP-1, 1920x1080, 0x0, 1, transform, 1
package hyprconf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cynageos/calibrate/internal/display"
)

const keyword = "monitor"

var (
	// ErrNotMonitorLine is returned by ParseLine for lines that are not
	// monitor assignments.
	ErrNotMonitorLine = errors.New("not a monitor line")
	// ErrMalformed is returned for monitor lines that cannot be decoded.
	ErrMalformed = errors.New("malformed monitor line")
)

// Format selects the serialized line shape.
type Format struct {
	// IncludeTransform appends ", transform, <r>" to every line.
	IncludeTransform bool
}

// DefaultFormat includes the transform field.
func DefaultFormat() Format {
	return Format{IncludeTransform: true}
}

// Legacy omits the transform field.
func Legacy() Format {
	return Format{}
}

// Line renders one record. Scale is always written as 1.
func (f Format) Line(rec display.Record) string {
	line := fmt.Sprintf("%s = %s, %dx%d, %dx%d, 1", keyword, rec.Name, rec.Width, rec.Height, rec.X, rec.Y)
	if f.IncludeTransform {
		line += fmt.Sprintf(", transform, %d", int(rec.Rotation))
	}
	return line
}

// Render returns one line per record, each terminated by a newline.
func Render(snapshot []display.Record, f Format) string {
	var b strings.Builder
	for _, rec := range snapshot {
		b.WriteString(f.Line(rec))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseLine decodes a single monitor line in either format.
func ParseLine(line string) (display.Record, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
	if !ok || strings.TrimSpace(key) != keyword {
		return display.Record{}, ErrNotMonitorLine
	}

	fields := strings.Split(value, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 4 || fields[0] == "" {
		return display.Record{}, fmt.Errorf("%w: expected name, mode, position and scale", ErrMalformed)
	}

	rec := display.Record{Name: fields[0]}
	var err error
	if rec.Width, rec.Height, err = pair(fields[1]); err != nil {
		return display.Record{}, fmt.Errorf("%w: mode %q", ErrMalformed, fields[1])
	}
	if rec.X, rec.Y, err = pair(fields[2]); err != nil {
		return display.Record{}, fmt.Errorf("%w: position %q", ErrMalformed, fields[2])
	}

	// Remaining fields after scale are key/value pairs.
	rest := fields[4:]
	for i := 0; i+1 < len(rest); i += 2 {
		if rest[i] != "transform" {
			continue
		}
		v, err := strconv.Atoi(rest[i+1])
		if err != nil || v < 0 || v > 7 {
			return display.Record{}, fmt.Errorf("%w: transform %q", ErrMalformed, rest[i+1])
		}
		rec.Rotation = display.Rotation(v % 4)
	}
	return rec, nil
}

// ParseFile decodes every monitor line in text. Blank lines, comments and
// other keywords are skipped.
func ParseFile(text string) ([]display.Record, error) {
	var out []display.Record
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		rec, err := ParseLine(trimmed)
		if errors.Is(err, ErrNotMonitorLine) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func pair(s string) (int, int, error) {
	// Mode may carry a refresh rate: 1920x1080@60.
	s, _, _ = strings.Cut(s, "@")
	a, b, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, ErrMalformed
	}
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
