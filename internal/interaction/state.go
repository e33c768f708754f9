package interaction

import (
	"fmt"

	"github.com/cynageos/calibrate/internal/canvas"
)

// Phase is the drag state of one display.
type Phase int

const (
	// PhaseIdle means no drag is in progress.
	PhaseIdle Phase = iota
	// PhaseDragging means the pointer holds the display.
	PhaseDragging
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Orientation of a guide line.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Guide is one snap grid line shown while dragging. Pos is the x coordinate
// of a vertical guide or the y coordinate of a horizontal one.
type Guide struct {
	Orientation Orientation
	Pos         float64
}

// Session holds the transient state of a drag in progress.
type Session struct {
	// Offset is the rect origin minus the pointer position at drag start.
	Offset canvas.Point
	Guides []Guide
}

// Guides returns the snap grid for geom: one vertical guide every snap step
// across the width and one horizontal guide every snap step across the height.
func Guides(geom canvas.Geometry) []Guide {
	step := geom.SnapStep()
	if step <= 0 {
		return nil
	}
	var guides []Guide
	for i := 0; float64(i)*step <= geom.Width; i++ {
		guides = append(guides, Guide{Orientation: Vertical, Pos: float64(i) * step})
	}
	for i := 0; float64(i)*step <= geom.Height; i++ {
		guides = append(guides, Guide{Orientation: Horizontal, Pos: float64(i) * step})
	}
	return guides
}

// Label is the text shown on a display rect.
func Label(name string, degrees int) string {
	return fmt.Sprintf("%s %d°", name, degrees)
}

// View receives visual updates from the controllers.
type View interface {
	MoveRect(name string, pos canvas.Point)
	ShowGuides(guides []Guide)
	HideGuides()
	SetLabel(name, text string)
}

// NopView discards all updates.
type NopView struct{}

func (NopView) MoveRect(string, canvas.Point) {}
func (NopView) ShowGuides([]Guide)            {}
func (NopView) HideGuides()                   {}
func (NopView) SetLabel(string, string)       {}
