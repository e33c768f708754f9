package interaction

import (
	"github.com/cynageos/calibrate/internal/canvas"
)

// Controller drives one display through Idle -> Dragging -> Idle and applies
// key moves. All positions are clamped by the model, so nothing here can
// leave the display outside the canvas.
type Controller struct {
	name    string
	model   *canvas.Model
	view    View
	steps   KeySteps
	phase   Phase
	session *Session
}

// NewController binds a controller to one display of m.
func NewController(name string, m *canvas.Model, view View, steps KeySteps) *Controller {
	if view == nil {
		view = NopView{}
	}
	return &Controller{
		name:  name,
		model: m,
		view:  view,
		steps: steps.withDefaults(),
		phase: PhaseIdle,
	}
}

// Name returns the display controlled.
func (c *Controller) Name() string { return c.name }

// Phase returns the current drag phase.
func (c *Controller) Phase() Phase { return c.phase }

// Session returns the active drag session, or nil when idle.
func (c *Controller) Session() *Session { return c.session }

// BeginDrag captures the offset between the rect origin and p and shows the
// snap guides. A second BeginDrag during a drag is ignored.
func (c *Controller) BeginDrag(p canvas.Point) {
	if c.phase == PhaseDragging {
		return
	}
	pos, err := c.model.Position(c.name)
	if err != nil {
		return
	}
	c.session = &Session{
		Offset: pos.Sub(p),
		Guides: Guides(c.model.Geometry()),
	}
	c.phase = PhaseDragging
	c.view.ShowGuides(c.session.Guides)
}

// Update follows the pointer without snapping.
func (c *Controller) Update(p canvas.Point) {
	if c.phase != PhaseDragging {
		return
	}
	c.moveTo(p.Add(c.session.Offset))
}

// End finishes the drag: the final position is clamped, each axis snapped
// to the grid, and the guides removed.
func (c *Controller) End(p canvas.Point) {
	if c.phase != PhaseDragging {
		return
	}
	target := p.Add(c.session.Offset)
	geom := c.model.Geometry()
	ext, err := c.model.Extent(c.name)
	if err == nil {
		target = geom.Snap(geom.Clamp(target, ext), ext)
		c.moveTo(target)
	}
	c.session = nil
	c.phase = PhaseIdle
	c.view.HideGuides()
}

// Key applies a keyboard action. Arrow keys move by the normal or fast step
// without snapping; KeyRotate advances the rotation and relabels the rect.
func (c *Controller) Key(k Key, mods Modifier) {
	if k == KeyRotate {
		r, err := c.model.RotateNext(c.name)
		if err != nil {
			return
		}
		c.view.SetLabel(c.name, Label(c.name, r.Degrees()))
		return
	}

	dx, dy, ok := c.steps.delta(k, mods)
	if !ok {
		return
	}
	pos, err := c.model.Position(c.name)
	if err != nil {
		return
	}
	c.moveTo(pos.Add(canvas.Point{X: dx, Y: dy}))
}

func (c *Controller) moveTo(p canvas.Point) {
	placed, err := c.model.Place(c.name, p.X, p.Y)
	if err != nil {
		return
	}
	c.view.MoveRect(c.name, placed)
}
