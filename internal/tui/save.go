package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cynageos/calibrate/internal/hyprconf"
)

type savePhase int

const (
	saveHidden  savePhase = iota
	savePreview           // showing diff, awaiting confirm
	saveResult            // showing outcome message
)

type reloadState int

const (
	reloadNone reloadState = iota
	reloadPending
	reloadDone
	reloadFailed
)

// reloadDoneMsg carries the outcome of the compositor reload.
type reloadDoneMsg struct {
	err error
}

// layoutSavedMsg is emitted after the monitor file was written.
type layoutSavedMsg struct{}

// SaveOverlay shows the pending monitor file change and writes it on confirm.
type SaveOverlay struct {
	phase        savePhase
	preview      hyprconf.Preview
	diff         []hyprconf.DiffLine
	result       hyprconf.Result
	err          error
	reload       reloadState
	reloadErr    error
	scrollOffset int
}

// Active reports whether the overlay is visible.
func (s SaveOverlay) Active() bool {
	return s.phase != saveHidden
}

// Show computes the diff and opens the preview overlay. A failed preview
// goes straight to the result box.
func (s *SaveOverlay) Show(preview hyprconf.Preview, err error) {
	s.err = nil
	s.reload = reloadNone
	s.reloadErr = nil
	s.result = hyprconf.Result{}
	s.scrollOffset = 0
	s.preview = preview

	if err != nil {
		s.phase = saveResult
		s.err = err
		return
	}

	s.diff = hyprconf.Diff(preview.Current, preview.Next)
	s.phase = savePreview
}

// SaveSucceeded reports whether the last save completed without error.
func (s SaveOverlay) SaveSucceeded() bool {
	return s.phase == saveResult && s.err == nil
}

// Update handles input while the overlay is active. Confirming writes the
// file and returns a command that reloads the compositor.
func (s SaveOverlay) Update(msg tea.Msg, saver *hyprconf.Saver) (SaveOverlay, tea.Cmd) {
	if done, ok := msg.(reloadDoneMsg); ok {
		if s.reload == reloadPending {
			s.reloadErr = done.err
			if done.err != nil {
				s.reload = reloadFailed
			} else {
				s.reload = reloadDone
			}
		}
		return s, nil
	}

	switch s.phase {
	case savePreview:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "esc", "n":
				s.phase = saveHidden
			case "enter", "y":
				return s.commit(saver)
			case "up", "k":
				if s.scrollOffset > 0 {
					s.scrollOffset--
				}
			case "down", "j":
				s.scrollOffset++
			}
		}
	case saveResult:
		if _, ok := msg.(tea.KeyMsg); ok {
			s.phase = saveHidden
		}
	}
	return s, nil
}

func (s SaveOverlay) commit(saver *hyprconf.Saver) (SaveOverlay, tea.Cmd) {
	s.phase = saveResult
	if saver == nil {
		s.err = fmt.Errorf("no monitor config path configured")
		return s, nil
	}
	s.result, s.err = saver.Commit(context.Background(), s.preview.Next)
	if s.err != nil {
		return s, nil
	}
	if saver.Reloader == nil {
		return s, func() tea.Msg { return layoutSavedMsg{} }
	}
	s.reload = reloadPending
	return s, tea.Batch(
		func() tea.Msg { return layoutSavedMsg{} },
		reloadCmd(saver),
	)
}

func reloadCmd(saver *hyprconf.Saver) tea.Cmd {
	return func() tea.Msg {
		return reloadDoneMsg{err: saver.Reload(context.Background())}
	}
}

// View renders the overlay for the given content area dimensions.
func (s SaveOverlay) View(width, height int) string {
	switch s.phase {
	case savePreview:
		return s.viewPreview(width, height)
	case saveResult:
		return s.viewResult(width, height)
	}
	return ""
}

var (
	overlayTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	overlayMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	overlayFoot  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overlayAdd   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	overlayDel   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	overlayWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// overlayBox centers content in a bordered box at most maxW wide.
func overlayBox(areaW, areaH, maxW int, content string) string {
	boxW := min(max(areaW-8, 30), maxW)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(boxW).
		Render(content)
	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

func (s SaveOverlay) viewPreview(areaW, areaH int) string {
	title := overlayTitle.Render("Save Display Layout")
	if !hyprconf.HasChanges(s.diff) {
		title += overlayFoot.Render("  (unchanged, will be rewritten and reloaded)")
	}

	// Rows left for the diff after title, path, footer, spacing and border.
	rows := max(areaH-11, 3)
	off := min(s.scrollOffset, max(len(s.diff)-rows, 0))
	end := min(off+rows, len(s.diff))
	textW := max(min(areaW-8, 90)-8, 8)

	var b strings.Builder
	for _, dl := range s.diff[off:end] {
		text := dl.Text
		if len(text) > textW {
			text = text[:textW]
		}
		switch dl.Kind {
		case hyprconf.Added:
			b.WriteString(overlayAdd.Render("+ " + text))
		case hyprconf.Removed:
			b.WriteString(overlayDel.Render("- " + text))
		default:
			b.WriteString(overlayMuted.Render("  " + text))
		}
		b.WriteByte('\n')
	}

	content := title + "\n" +
		overlayMuted.Render(s.preview.Path) + "\n\n" +
		b.String() + "\n" +
		overlayFoot.Render("enter/y: write  esc: cancel  j/k: scroll")
	return overlayBox(areaW, areaH, 90, content)
}

func (s SaveOverlay) viewResult(areaW, areaH int) string {
	var msg string
	if s.err != nil {
		msg = overlayDel.Bold(true).Render("Error: " + s.err.Error())
	} else {
		msg = overlayAdd.Bold(true).Render("Layout saved") + "\n" + overlayAdd.Render(s.result.String())
		switch s.reload {
		case reloadPending:
			msg += "\n" + overlayWarn.Render("Reloading compositor...")
		case reloadDone:
			msg += "\n" + overlayAdd.Render("Compositor reloaded")
		case reloadFailed:
			msg += "\n" + overlayWarn.Render("Reload failed: "+s.reloadErr.Error())
		}
	}
	return overlayBox(areaW, areaH, 70, msg+"\n\n"+overlayFoot.Render("press any key to dismiss"))
}
