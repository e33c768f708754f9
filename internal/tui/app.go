package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cynageos/calibrate/internal/config"
	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/hyprconf"
)

// model is the root bubbletea model for the TUI.
type model struct {
	cfg      *config.Config
	registry *display.Registry
	backend  string
	saver    *hyprconf.Saver
	logger   *slog.Logger

	// Tab navigation
	activeTab Tab

	// Sub-models
	layoutTab   LayoutTab
	displaysTab DisplaysTab
	settingsTab SettingsTab

	// Save overlay
	saveOverlay SaveOverlay

	// baseline is the fingerprint of the last saved or enumerated layout.
	baseline uint64

	// Terminal dimensions
	width  int
	height int
}

func newModel(opts Options) model {
	cfg := opts.Config
	logger := opts.logger()

	m := model{
		cfg:       cfg,
		registry:  opts.Registry,
		backend:   opts.Backend,
		saver:     opts.Saver,
		logger:    logger,
		activeTab: TabLayout,
	}

	m.layoutTab = NewLayoutTab(opts.Registry, cfg.Geometry(), cfg.KeySteps(), cfg.Keys.Rotate, logger)
	m.displaysTab = NewDisplaysTab(opts.Registry, cfg.Format())
	m.settingsTab = NewSettingsTab(cfg, opts.ConfigPath)

	m.markSaved()
	m.refreshDisplays()
	return m
}

// markSaved records the current layout as the clean state.
func (m *model) markSaved() {
	fp, err := m.layoutTab.Editor().Model().Fingerprint()
	if err != nil {
		m.logger.Warn("fingerprint layout", "error", err)
		return
	}
	m.baseline = fp
}

// dirty reports whether the layout differs from the clean state.
func (m model) dirty() bool {
	fp, err := m.layoutTab.Editor().Model().Fingerprint()
	if err != nil {
		return false
	}
	return fp != m.baseline
}

func (m *model) refreshDisplays() {
	ed := m.layoutTab.Editor()
	m.displaysTab.Refresh(ed.Model().Snapshot(), ed.Focused())
}

func (m model) status() statusInfo {
	ed := m.layoutTab.Editor()
	info := statusInfo{
		backend:  m.backend,
		displays: ed.Model().Len(),
		focused:  ed.Focused(),
		dirty:    m.dirty(),
	}
	if ed.Dragging() != "" {
		info.notice = "dragging " + ed.Dragging()
	}
	return info
}

// resize recomputes the content area and forwards it to every tab.
func (m model) resize() model {
	statusH := lipgloss.Height(renderStatusBar(m.status(), m.width))
	tabH := lipgloss.Height(renderTabBar(m.activeTab, m.width))
	helpH := lipgloss.Height(renderHelpBar(m.activeTab, m.cfg.Keys.Rotate, m.width))

	contentHeight := m.height - statusH - tabH - helpH
	if contentHeight < 1 {
		contentHeight = 1
	}
	subMsg := tea.WindowSizeMsg{Width: m.width, Height: contentHeight}
	m.layoutTab, _ = m.layoutTab.Update(subMsg)
	m.layoutTab.SetOrigin(0, statusH+tabH)
	m.displaysTab, _ = m.displaysTab.Update(subMsg)
	m.settingsTab, _ = m.settingsTab.Update(subMsg)
	return m
}

func (m model) switchTab(t Tab) model {
	m.activeTab = t
	if t == TabDisplays {
		m.refreshDisplays()
	}
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		return m.resize(), nil
	}

	// Reload results arrive after the overlay may have been dismissed.
	if done, ok := msg.(reloadDoneMsg); ok {
		var cmd tea.Cmd
		m.saveOverlay, cmd = m.saveOverlay.Update(done, m.saver)
		return m, cmd
	}
	if _, ok := msg.(layoutSavedMsg); ok {
		m.markSaved()
		m.refreshDisplays()
		return m, nil
	}

	// A drag ends on release even if the overlay opened or the tab changed
	// while the button was held.
	if mm, ok := msg.(tea.MouseMsg); ok && mm.Action == tea.MouseActionRelease &&
		m.layoutTab.Editor().Dragging() != "" && (m.saveOverlay.Active() || m.activeTab != TabLayout) {
		m.layoutTab.handleMouse(mm)
		return m, nil
	}

	// Save overlay captures all input when active
	if m.saveOverlay.Active() {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if _, ok := msg.(tea.KeyMsg); !ok {
			return m, nil
		}
		var cmd tea.Cmd
		m.saveOverlay, cmd = m.saveOverlay.Update(msg, m.saver)
		return m, cmd
	}

	// ctrl+s triggers save overlay from any context (including form editing)
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.openSave()
		return m, nil
	}

	switch msg := msg.(type) {
	case focusDisplayMsg:
		m.layoutTab.Editor().Focus(msg.name)
		return m.switchTab(TabLayout), nil

	case settingsAppliedMsg:
		m.applySettings()
		return m, nil
	}

	// When the settings form captures input, delegate all messages to it
	// (the form consumes keys; only ctrl+c escapes to quit)
	if m.activeTab == TabSettings && m.settingsTab.Editing() {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			return m.switchTab((m.activeTab + 1) % tabCount), nil
		case "shift+tab":
			return m.switchTab((m.activeTab - 1 + tabCount) % tabCount), nil
		case "1":
			return m.switchTab(TabLayout), nil
		case "2":
			return m.switchTab(TabDisplays), nil
		case "3":
			return m.switchTab(TabSettings), nil
		}
	}

	// Delegate to active tab's sub-model
	var cmd tea.Cmd
	switch m.activeTab {
	case TabLayout:
		m.layoutTab, cmd = m.layoutTab.Update(msg)
	case TabDisplays:
		m.displaysTab, cmd = m.displaysTab.Update(msg)
	case TabSettings:
		m.settingsTab, cmd = m.settingsTab.Update(msg)
	}
	return m, cmd
}

func (m *model) openSave() {
	if m.saver == nil {
		m.saveOverlay.Show(hyprconf.Preview{}, fmt.Errorf("saving is not configured"))
		return
	}
	preview, err := m.saver.Preview(m.layoutTab.Editor().Model().Snapshot())
	m.saveOverlay.Show(preview, err)
}

// applySettings rebuilds the canvas after the settings form was submitted.
func (m *model) applySettings() {
	m.layoutTab.Reconfigure(m.cfg.Geometry(), m.cfg.KeySteps(), m.cfg.Keys.Rotate)
	m.displaysTab.SetFormat(m.cfg.Format())
	if m.saver != nil {
		m.saver.Format = m.cfg.Format()
	}
	m.refreshDisplays()
	m.logger.Info("settings applied",
		"snap_unit", m.cfg.Canvas.SnapUnit,
		"step", m.cfg.Keys.Step,
		"fast_step", m.cfg.Keys.FastStep,
		"include_transform", m.cfg.IncludeTransform)
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	// Status bar (top)
	statusBar := renderStatusBar(m.status(), m.width)

	// Tab bar
	tabBar := renderTabBar(m.activeTab, m.width)

	// Help bar (bottom)
	helpBar := renderHelpBar(m.activeTab, m.cfg.Keys.Rotate, m.width)

	// Calculate content height: total - statusBar - tabBar - helpBar
	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Tab content (or save overlay)
	var content string
	if m.saveOverlay.Active() {
		content = m.saveOverlay.View(m.width, contentHeight)
	} else {
		switch m.activeTab {
		case TabLayout:
			content = m.layoutTab.View()
		case TabDisplays:
			content = m.displaysTab.View()
		case TabSettings:
			content = m.settingsTab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
