package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cynageos/calibrate/internal/canvas"
	"github.com/cynageos/calibrate/internal/display"
	"github.com/cynageos/calibrate/internal/interaction"
)

// LayoutTab is the drag-and-drop canvas.
type LayoutTab struct {
	registry  *display.Registry
	geom      canvas.Geometry
	steps     interaction.KeySteps
	rotateKey string
	logger    *slog.Logger

	editor *interaction.Editor
	view   *canvasView

	// originX/originY locate the canvas border on screen for mouse mapping.
	originX int
	originY int
	width   int
	height  int
}

// NewLayoutTab builds the canvas from the enumerated displays.
func NewLayoutTab(reg *display.Registry, geom canvas.Geometry, steps interaction.KeySteps, rotateKey string, logger *slog.Logger) LayoutTab {
	t := LayoutTab{
		registry:  reg,
		geom:      geom,
		steps:     steps,
		rotateKey: rotateKey,
		logger:    logger,
	}
	t.rebuild(reg, "")
	return t
}

// rebuild replaces the editor with a fresh one over reg, keeping focus on
// keep when it still exists.
func (t *LayoutTab) rebuild(reg *display.Registry, keep string) {
	t.view = newCanvasView()
	m := canvas.New(t.geom, reg)
	t.geom = m.Geometry()
	t.editor = interaction.NewEditor(m, interaction.Options{
		View:   t.view,
		Steps:  t.steps,
		Logger: t.logger,
	})
	if keep != "" {
		t.editor.Focus(keep)
	}
}

// Reset discards every edit and returns to the enumerated layout.
func (t *LayoutTab) Reset() {
	t.rebuild(t.registry, t.editor.Focused())
}

// Reconfigure applies new canvas and key settings, carrying over the current
// real layout.
func (t *LayoutTab) Reconfigure(geom canvas.Geometry, steps interaction.KeySteps, rotateKey string) {
	current := display.NewRegistry(t.editor.Model().Snapshot())
	t.geom = geom
	t.steps = steps
	t.rotateKey = rotateKey
	t.rebuild(current, t.editor.Focused())
}

// Editor exposes the interaction editor.
func (t LayoutTab) Editor() *interaction.Editor { return t.editor }

// SetOrigin records where the tab content starts on screen.
func (t *LayoutTab) SetOrigin(x, y int) {
	t.originX = x
	t.originY = y
}

func (t LayoutTab) canvasSize() (int, int) {
	// One line below the canvas is reserved for the caption.
	return t.width, t.height - 1
}

func (t LayoutTab) grid() grid {
	w, h := t.canvasSize()
	return grid{cols: w - 2, rows: h - 2, geom: t.geom}
}

// pointAt maps a screen cell to a canvas point.
func (t LayoutTab) pointAt(x, y int) (canvas.Point, bool) {
	g := t.grid()
	if !g.valid() {
		return canvas.Point{}, false
	}
	return g.toPoint(x-t.originX-1, y-t.originY-1), true
}

// Update handles keyboard and mouse input for the canvas.
func (t LayoutTab) Update(msg tea.Msg) (LayoutTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		return t, nil

	case tea.MouseMsg:
		t.handleMouse(msg)
		return t, nil

	case tea.KeyMsg:
		t.handleKey(msg.String())
		return t, nil
	}
	return t, nil
}

func (t *LayoutTab) handleMouse(msg tea.MouseMsg) {
	p, ok := t.pointAt(msg.X, msg.Y)
	if !ok {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			t.editor.PointerDown(p)
		}
	case tea.MouseActionMotion:
		t.editor.PointerMove(p)
	case tea.MouseActionRelease:
		t.editor.PointerUp(p)
	}
}

var arrowKeys = map[string]interaction.Key{
	"up":    interaction.KeyUp,
	"down":  interaction.KeyDown,
	"left":  interaction.KeyLeft,
	"right": interaction.KeyRight,
}

func (t *LayoutTab) handleKey(key string) {
	if key == t.rotateKey {
		t.editor.Key(interaction.KeyRotate, 0)
		return
	}

	switch key {
	case "n":
		t.editor.FocusNext(1)
		return
	case "N":
		t.editor.FocusNext(-1)
		return
	case "x":
		t.Reset()
		return
	}

	mods := interaction.Modifier(0)
	switch {
	case strings.HasPrefix(key, "shift+"):
		mods |= interaction.ModFast
		key = strings.TrimPrefix(key, "shift+")
	case strings.HasPrefix(key, "alt+"):
		if k, ok := arrowKeys[strings.TrimPrefix(key, "alt+")]; ok {
			t.editor.FocusToward(k)
		}
		return
	}
	if k, ok := arrowKeys[key]; ok {
		t.editor.Key(k, mods)
	}
}

var (
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	canvasStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// View renders the canvas and a caption describing the focused display.
func (t LayoutTab) View() string {
	w, h := t.canvasSize()
	if w < 5 || h < 3 {
		return "terminal too small"
	}
	m := t.editor.Model()
	lines := renderCanvas(m.Placements(), t.view, t.geom, t.editor.Focused(), t.editor.Dragging(), w, h)
	return canvasStyle.Render(strings.Join(lines, "\n")) + "\n" + captionStyle.Render(t.caption())
}

func (t LayoutTab) caption() string {
	name := t.editor.Focused()
	if name == "" {
		return "no displays"
	}
	for _, rec := range t.editor.Model().Snapshot() {
		if rec.Name == name {
			return fmt.Sprintf("%s  %dx%d at %d,%d",
				t.editor.Label(name), rec.Width, rec.Height, rec.X, rec.Y)
		}
	}
	return name
}
