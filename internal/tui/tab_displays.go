package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/hyprconf"
)

// displayItem implements list.Item for the display list.
type displayItem struct {
	rec     display.Record
	focused bool
	moved   bool
}

func (i displayItem) Title() string {
	prefix := "  "
	if i.focused {
		prefix = "* "
	}
	suffix := ""
	if i.moved {
		suffix = " (edited)"
	}
	return prefix + i.rec.Name + suffix
}

func (i displayItem) Description() string {
	return fmt.Sprintf("%dx%d at %dx%d · %s", i.rec.Width, i.rec.Height, i.rec.X, i.rec.Y, i.rec.Rotation)
}

func (i displayItem) FilterValue() string { return i.rec.Name }

// focusDisplayMsg asks the root model to focus a display on the canvas.
type focusDisplayMsg struct {
	name string
}

// DisplaysTab lists every enumerated display with its current layout.
type DisplaysTab struct {
	list     list.Model
	original *display.Registry
	format   hyprconf.Format
	current  []display.Record

	width  int
	height int
	ready  bool
}

// NewDisplaysTab creates the display list.
func NewDisplaysTab(original *display.Registry, format hyprconf.Format) DisplaysTab {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Displays"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return DisplaysTab{
		list:     l,
		original: original,
		format:   format,
	}
}

// Refresh rebuilds the list from the current snapshot.
func (dt *DisplaysTab) Refresh(snapshot []display.Record, focused string) {
	dt.current = snapshot
	items := make([]list.Item, 0, len(snapshot))
	for _, rec := range snapshot {
		orig, _ := dt.original.Get(rec.Name)
		items = append(items, displayItem{
			rec:     rec,
			focused: rec.Name == focused,
			moved:   orig != rec,
		})
	}
	dt.list.SetItems(items)
}

// SetFormat changes the monitor line format shown in the detail pane.
func (dt *DisplaysTab) SetFormat(f hyprconf.Format) {
	dt.format = f
}

// Update implements tea.Model.
func (dt DisplaysTab) Update(msg tea.Msg) (DisplaysTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		dt.width = msg.Width
		dt.height = msg.Height
		dt.list.SetSize(dt.sidebarWidth(), dt.height)
		dt.ready = true
		return dt, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			if item, ok := dt.list.SelectedItem().(displayItem); ok {
				name := item.rec.Name
				return dt, func() tea.Msg { return focusDisplayMsg{name: name} }
			}
			return dt, nil
		}
	}

	var cmd tea.Cmd
	dt.list, cmd = dt.list.Update(msg)
	return dt, cmd
}

func (dt DisplaysTab) sidebarWidth() int {
	// Sidebar takes ~40% of width, min 24, max 44
	sw := dt.width * 40 / 100
	if sw < 24 {
		sw = 24
	}
	if sw > 44 {
		sw = 44
	}
	return sw
}

// View implements tea.Model.
func (dt DisplaysTab) View() string {
	if !dt.ready || dt.width == 0 || dt.height == 0 {
		return ""
	}

	sidebarWidth := dt.sidebarWidth()
	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(dt.height).
		Render(dt.list.View())

	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Render(strings.TrimSuffix(strings.Repeat("│\n", dt.height), "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " "+sep, dt.renderDetail())
}

func (dt DisplaysTab) renderDetail() string {
	item, ok := dt.list.SelectedItem().(displayItem)
	if !ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(" no displays enumerated")
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render(" " + item.rec.Name)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	row := func(k, v string) string {
		return " " + label.Render(fmt.Sprintf("%-12s", k)) + value.Render(v)
	}

	rows := []string{title, ""}
	rows = append(rows, row("resolution", fmt.Sprintf("%dx%d", item.rec.Width, item.rec.Height)))
	rows = append(rows, row("position", fmt.Sprintf("%d, %d", item.rec.X, item.rec.Y)))
	rows = append(rows, row("rotation", item.rec.Rotation.String()))
	if orig, ok := dt.original.Get(item.rec.Name); ok && orig != item.rec {
		rows = append(rows, row("enumerated", fmt.Sprintf("%d, %d  %s", orig.X, orig.Y, orig.Rotation)))
	}
	rows = append(rows, "", " "+label.Render("monitor line"))
	rows = append(rows, " "+value.Render(dt.format.Line(item.rec)))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
