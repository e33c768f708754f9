package interaction

import (
	"log/slog"

	"github.com/cynageos/calibrate/internal/canvas"
)

// Options configure an Editor.
type Options struct {
	View   View
	Steps  KeySteps
	Logger *slog.Logger
}

// Editor owns the canvas model, one controller per display and the keyboard
// focus. Pointer and key events are routed to the right controller here.
//
// Editor is not safe for concurrent use; callers serialize events.
type Editor struct {
	model       *canvas.Model
	view        View
	logger      *slog.Logger
	controllers map[string]*Controller
	focus       string
	dragging    string
}

// NewEditor creates an editor over m. The first display gets focus.
func NewEditor(m *canvas.Model, opts Options) *Editor {
	view := opts.View
	if view == nil {
		view = NopView{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Editor{
		model:       m,
		view:        view,
		logger:      logger,
		controllers: make(map[string]*Controller, m.Len()),
	}
	for _, name := range m.Names() {
		e.controllers[name] = NewController(name, m, view, opts.Steps)
		view.SetLabel(name, e.Label(name))
	}
	if names := m.Names(); len(names) > 0 {
		e.focus = names[0]
	}
	return e
}

// Model returns the underlying canvas model.
func (e *Editor) Model() *canvas.Model { return e.model }

// Focused returns the display that receives key events.
func (e *Editor) Focused() string { return e.focus }

// Dragging returns the display being dragged, or "" when none is.
func (e *Editor) Dragging() string { return e.dragging }

// Controller returns the controller for name.
func (e *Editor) Controller(name string) (*Controller, bool) {
	c, ok := e.controllers[name]
	return c, ok
}

// Label returns "<name> <deg>°" for name.
func (e *Editor) Label(name string) string {
	r, err := e.model.Rotation(name)
	if err != nil {
		return name
	}
	return Label(name, r.Degrees())
}

// Focus gives keyboard focus to name.
func (e *Editor) Focus(name string) bool {
	if _, ok := e.controllers[name]; !ok {
		return false
	}
	if e.focus != name {
		e.logger.Debug("focus", "display", name)
	}
	e.focus = name
	return true
}

// FocusNext cycles focus through the displays by delta, wrapping at both ends.
func (e *Editor) FocusNext(delta int) string {
	names := e.model.Names()
	if len(names) == 0 {
		return ""
	}
	idx := 0
	for i, n := range names {
		if n == e.focus {
			idx = i
			break
		}
	}
	idx = ((idx+delta)%len(names) + len(names)) % len(names)
	e.Focus(names[idx])
	return e.focus
}

// FocusToward moves focus to the nearest display in the direction of an
// arrow key. Focus stays put when no display lies that way.
func (e *Editor) FocusToward(k Key) string {
	if next, ok := nearestInDirection(e.model.Placements(), e.focus, k); ok {
		e.Focus(next)
	}
	return e.focus
}

// Click focuses the topmost display under p.
func (e *Editor) Click(p canvas.Point) (string, bool) {
	name, ok := e.model.TopmostAt(p)
	if !ok {
		return "", false
	}
	e.Focus(name)
	return name, true
}

// PointerDown focuses the display under p and starts dragging it.
func (e *Editor) PointerDown(p canvas.Point) bool {
	if e.dragging != "" {
		return false
	}
	name, ok := e.Click(p)
	if !ok {
		return false
	}
	e.controllers[name].BeginDrag(p)
	e.dragging = name
	e.logger.Debug("drag start", "display", name, "x", p.X, "y", p.Y)
	return true
}

// PointerMove forwards pointer motion to the display being dragged.
func (e *Editor) PointerMove(p canvas.Point) {
	if c, ok := e.controllers[e.dragging]; ok {
		c.Update(p)
	}
}

// PointerUp ends the current drag with a snap.
func (e *Editor) PointerUp(p canvas.Point) {
	c, ok := e.controllers[e.dragging]
	if !ok {
		return
	}
	c.End(p)
	pos, _ := e.model.Position(e.dragging)
	e.logger.Debug("drag end", "display", e.dragging, "x", pos.X, "y", pos.Y)
	e.dragging = ""
}

// Key routes a key to the focused display.
func (e *Editor) Key(k Key, mods Modifier) {
	c, ok := e.controllers[e.focus]
	if !ok {
		return
	}
	c.Key(k, mods)
}
