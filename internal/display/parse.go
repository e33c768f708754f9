package display

import (
	"strconv"
	"strings"
)

const (
	headerToken    = "Monitor "
	positionToken  = " at "
	transformToken = "transform:"
)

// Parse reads `hyprctl monitors all` style output.
//
// The text is split into one block per "Monitor <name> ..." header. Inside a
// block two lines matter:
//
//	1920x1080@60.00000 at 0x0
//	transform: 1
//
// Fields that fail to parse are left at zero so a single malformed block never
// affects the others.
func Parse(text string) []Record {
	var records []Record
	var cur *Record

	flush := func() {
		if cur != nil {
			records = append(records, *cur)
			cur = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, headerToken) {
			flush()
			cur = &Record{Name: headerName(line)}
			continue
		}
		if cur == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, transformToken):
			cur.Rotation = parseTransform(strings.TrimSpace(strings.TrimPrefix(line, transformToken)))
		case strings.Contains(line, "@") && strings.Contains(line, positionToken):
			cur.Width, cur.Height, cur.X, cur.Y = parseModeLine(line)
		}
	}
	flush()

	return records
}

func headerName(line string) string {
	fields := strings.Fields(strings.TrimPrefix(line, headerToken))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSuffix(fields[0], ":")
}

// parseModeLine handles "<w>x<h>@<refresh> at <x>x<y>".
func parseModeLine(line string) (w, h, x, y int) {
	mode, pos, ok := strings.Cut(line, positionToken)
	if !ok {
		return 0, 0, 0, 0
	}
	res, _, _ := strings.Cut(mode, "@")
	w, h = parsePair(res)
	fields := strings.Fields(pos)
	if len(fields) == 0 {
		return w, h, 0, 0
	}
	x, y = parsePair(fields[0])
	return w, h, x, y
}

func parsePair(s string) (int, int) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return 0, 0
	}
	return atoiOrZero(a), atoiOrZero(b)
}

func parseTransform(s string) Rotation {
	v := atoiOrZero(s)
	switch {
	case v >= 0 && v < int(rotationCount):
		return Rotation(v)
	case v >= 4 && v < 8:
		// Flipped variants keep their rotation component.
		return Rotation(v - 4)
	default:
		return Rotate0
	}
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
