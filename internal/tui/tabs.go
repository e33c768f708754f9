package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabLayout Tab = iota
	TabDisplays
	TabSettings
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabLayout:
		return "Layout"
	case TabDisplays:
		return "Displays"
	case TabSettings:
		return "Settings"
	default:
		return "?"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")
)

// renderTabBar renders the tab bar with the given active tab and width.
func renderTabBar(active Tab, width int) string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		label := fmt.Sprintf("%d:%s", int(i)+1, i)
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	return tabBarStyle.Width(width).Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// statusInfo is what the status bar reports about the session.
type statusInfo struct {
	backend  string
	displays int
	focused  string
	dirty    bool
	notice   string
}

func renderStatusBar(info statusInfo, width int) string {
	var parts []string

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	if info.dirty {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("●")
	}
	backend := info.backend
	if backend == "" {
		backend = "no backend"
	}
	parts = append(parts, dot+" "+backend)
	parts = append(parts, fmt.Sprintf("%d display(s)", info.displays))
	if info.focused != "" {
		parts = append(parts, "focus:"+info.focused)
	}
	if info.dirty {
		parts = append(parts, "unsaved changes")
	}
	if info.notice != "" {
		parts = append(parts, info.notice)
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

// renderHelpBar renders the bottom help/keybinding bar for the active tab.
func renderHelpBar(active Tab, rotateKey string, width int) string {
	var help string
	switch active {
	case TabLayout:
		help = "drag: move  arrows: nudge  shift+arrows: fast  " + rotateKey + ": rotate  n/N: focus  x: reset  ctrl-s: save  q: quit"
	case TabDisplays:
		help = "enter: focus on canvas  tab/1-3: switch tabs  ctrl-s: save  q: quit"
	case TabSettings:
		help = "e: edit  w: write config  tab/1-3: switch tabs  ctrl-s: save  q: quit"
	default:
		help = "tab/shift-tab: switch tabs  1-3: jump to tab  ctrl-s: save  q/ctrl-c: quit"
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}
