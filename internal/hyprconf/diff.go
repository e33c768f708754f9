package hyprconf

import "strings"

// ChangeKind classifies one line of a Diff.
type ChangeKind int

const (
	Unchanged ChangeKind = iota
	Removed
	Added
)

// DiffLine is one line of a monitor file comparison.
type DiffLine struct {
	Kind ChangeKind
	Text string
}

// Diff compares the current monitor file with the text about to replace it.
// Monitor lines are paired by output name so a moved display shows up as a
// removed/added pair next to each other. Lines of current that have no
// counterpart (other outputs, comments, other settings) are reported as
// removed after the new lines, since a save overwrites the whole file.
// Blank lines are ignored.
func Diff(current, next string) []DiffLine {
	old := nonBlankLines(current)
	used := make([]bool, len(old))

	byName := make(map[string]int, len(old))
	for i, line := range old {
		if name, ok := monitorName(line); ok {
			if _, dup := byName[name]; !dup {
				byName[name] = i
			}
		}
	}

	var out []DiffLine
	for _, line := range nonBlankLines(next) {
		name, ok := monitorName(line)
		i, found := byName[name]
		switch {
		case ok && found && !used[i]:
			used[i] = true
			if old[i] == line {
				out = append(out, DiffLine{Kind: Unchanged, Text: line})
				continue
			}
			out = append(out, DiffLine{Kind: Removed, Text: old[i]}, DiffLine{Kind: Added, Text: line})
		default:
			out = append(out, DiffLine{Kind: Added, Text: line})
		}
	}
	for i, line := range old {
		if !used[i] {
			out = append(out, DiffLine{Kind: Removed, Text: line})
		}
	}
	return out
}

// HasChanges reports whether any line of d is added or removed.
func HasChanges(d []DiffLine) bool {
	for _, l := range d {
		if l.Kind != Unchanged {
			return true
		}
	}
	return false
}

// monitorName extracts the output name of a "monitor = NAME, ..." line
// without validating the rest of it.
func monitorName(line string) (string, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok || strings.TrimSpace(key) != keyword {
		return "", false
	}
	name, _, _ := strings.Cut(value, ",")
	name = strings.TrimSpace(name)
	return name, name != ""
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimRight(line, " \t\r"); strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
