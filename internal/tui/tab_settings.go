package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/cynageos/calibrate/internal/config"
)

// settingsAppliedMsg tells the root model that editor settings changed.
type settingsAppliedMsg struct{}

// settingsStatusMsg reports the outcome of writing the app config.
type settingsStatusMsg struct {
	text string
}

// clearSettingsStatusMsg clears the status line after a delay.
type clearSettingsStatusMsg struct{}

// SettingsTab edits the canvas and key settings of the running session.
type SettingsTab struct {
	cfg        *config.Config
	configPath string

	width  int
	height int

	editing bool
	form    *huh.Form

	statusText string

	// Form-bound values (strings for huh, converted on submit)
	fSnapUnit         string
	fStep             string
	fFastStep         string
	fRotate           string
	fIncludeTransform bool
}

// NewSettingsTab creates a SettingsTab over cfg. configPath is where `w`
// writes; empty means the default location.
func NewSettingsTab(cfg *config.Config, configPath string) SettingsTab {
	return SettingsTab{cfg: cfg, configPath: configPath}
}

// Editing reports whether the form is capturing input.
func (s SettingsTab) Editing() bool { return s.editing }

// Update implements tea.Model.
func (s SettingsTab) Update(msg tea.Msg) (SettingsTab, tea.Cmd) {
	if s.editing {
		return s.updateEditing(msg)
	}
	return s.updateDisplay(msg)
}

func (s SettingsTab) updateDisplay(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			s.startEditing()
			return s, s.form.Init()
		case "w":
			return s, s.writeConfig()
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	case settingsStatusMsg:
		s.statusText = msg.text
		return s, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearSettingsStatusMsg{}
		})
	case clearSettingsStatusMsg:
		s.statusText = ""
	}
	return s, nil
}

func (s SettingsTab) updateEditing(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.editing = false
			s.form = nil
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.applyForm()
		s.editing = false
		s.form = nil
		return s, func() tea.Msg { return settingsAppliedMsg{} }
	}

	return s, cmd
}

func (s *SettingsTab) writeConfig() tea.Cmd {
	cfg := s.cfg
	path := s.configPath
	return func() tea.Msg {
		var err error
		if path == "" {
			err = cfg.Save()
		} else {
			err = cfg.SaveTo(path)
		}
		if err != nil {
			return settingsStatusMsg{text: "error: " + err.Error()}
		}
		return settingsStatusMsg{text: "config written"}
	}
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func positiveFloat(v string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func singleKey(v string) error {
	v = strings.TrimSpace(v)
	switch v {
	case "", "n", "N", "x", "e", "w", "q":
		return fmt.Errorf("key %q is reserved", v)
	}
	return nil
}

func (s *SettingsTab) startEditing() {
	cfg := s.cfg
	s.fSnapUnit = strconv.Itoa(cfg.Canvas.SnapUnit)
	s.fStep = strconv.FormatFloat(cfg.Keys.Step, 'f', -1, 64)
	s.fFastStep = strconv.FormatFloat(cfg.Keys.FastStep, 'f', -1, 64)
	s.fRotate = cfg.Keys.Rotate
	s.fIncludeTransform = cfg.IncludeTransform

	w := s.width - 4
	if w < 40 {
		w = 40
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("snap_unit").
				Title("Snap Unit").
				Description("Grid size in real pixels applied when a drag ends").
				Validate(positiveInt).
				Value(&s.fSnapUnit),

			huh.NewInput().
				Key("step").
				Title("Key Step").
				Description("Canvas units per arrow key press").
				Validate(positiveFloat).
				Value(&s.fStep),

			huh.NewInput().
				Key("fast_step").
				Title("Fast Key Step").
				Description("Canvas units per shift+arrow press").
				Validate(positiveFloat).
				Value(&s.fFastStep),

			huh.NewInput().
				Key("rotate").
				Title("Rotate Key").
				Description("Rotates the focused display by 90°").
				Validate(singleKey).
				Value(&s.fRotate),

			huh.NewConfirm().
				Key("include_transform").
				Title("Write transform").
				Description("Append ', transform, N' to each monitor line").
				Value(&s.fIncludeTransform),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	s.editing = true
}

func (s *SettingsTab) applyForm() {
	if v, err := strconv.Atoi(strings.TrimSpace(s.fSnapUnit)); err == nil && v > 0 {
		s.cfg.Canvas.SnapUnit = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s.fStep), 64); err == nil && v > 0 {
		s.cfg.Keys.Step = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s.fFastStep), 64); err == nil && v > 0 {
		s.cfg.Keys.FastStep = v
	}
	if v := strings.TrimSpace(s.fRotate); v != "" {
		s.cfg.Keys.Rotate = v
	}
	s.cfg.IncludeTransform = s.fIncludeTransform
}

// View implements tea.Model.
func (s SettingsTab) View() string {
	if s.editing && s.form != nil {
		return s.viewEditing()
	}
	return s.viewDisplay()
}

func (s SettingsTab) viewDisplay() string {
	cfg := s.cfg

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(22).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	format := "legacy (no transform)"
	if cfg.IncludeTransform {
		format = "with transform"
	}

	lines := []string{
		"",
		row("Backend", cfg.Backend),
		row("Monitor Config", cfg.MonitorConfig),
		row("Line Format", format),
		"",
		row("Canvas", fmt.Sprintf("%gx%g at scale %g", cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Scale)),
		row("Snap Unit", fmt.Sprintf("%d px", cfg.Canvas.SnapUnit)),
		"",
		row("Key Step", fmt.Sprintf("%g", cfg.Keys.Step)),
		row("Fast Key Step", fmt.Sprintf("%g", cfg.Keys.FastStep)),
		row("Rotate Key", cfg.Keys.Rotate),
		"",
		row("Notifications", strconv.FormatBool(cfg.Notifications)),
		row("Log Level", cfg.LogLevel),
		"",
		dimStyle.Render("  Press 'e' to edit settings, 'w' to write the config file"),
	}
	if s.statusText != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("  "+s.statusText))
	}

	contentStyle := lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2)

	return contentStyle.Render(strings.Join(lines, "\n"))
}

func (s SettingsTab) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	content := header + "\n\n" + s.form.View()

	style := lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2)

	return style.Render(content)
}
