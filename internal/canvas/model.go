package canvas

import (
	"errors"
	"fmt"
	"math"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/cynageos/calibrate/internal/display"
)

// ErrUnknownDisplay is returned when an operation names a display that is not
// on the canvas.
var ErrUnknownDisplay = errors.New("unknown display")

// Placement is the canvas state of one display.
type Placement struct {
	Name     string
	Pos      Point
	Extent   Point
	Rotation display.Rotation
}

// Rect returns the canvas rectangle occupied by the placement.
func (p Placement) Rect() Rect {
	return Rect{X: p.Pos.X, Y: p.Pos.Y, W: p.Extent.X, H: p.Extent.Y}
}

// Model is the editable layout. It owns a copy of every display record and
// keeps each display fully inside the canvas bounds.
type Model struct {
	geom       Geometry
	records    map[string]display.Record
	placements map[string]*Placement
	order      []string
}

// New populates a model from reg. Initial positions are the real positions
// multiplied by the scale, clamped into bounds.
func New(geom Geometry, reg *display.Registry) *Model {
	geom = geom.withDefaults()
	m := &Model{
		geom:       geom,
		records:    make(map[string]display.Record, reg.Len()),
		placements: make(map[string]*Placement, reg.Len()),
	}
	for _, rec := range reg.Records() {
		ext := Point{
			X: float64(rec.Width) * geom.Scale,
			Y: float64(rec.Height) * geom.Scale,
		}
		x, y := display.Scaled(rec, geom.Scale)
		m.records[rec.Name] = rec
		m.placements[rec.Name] = &Placement{
			Name:     rec.Name,
			Pos:      geom.Clamp(Point{X: x, Y: y}, ext),
			Extent:   ext,
			Rotation: rec.Rotation,
		}
		m.order = append(m.order, rec.Name)
	}
	return m
}

// Geometry returns the canvas geometry in use.
func (m *Model) Geometry() Geometry {
	return m.geom
}

// Names returns display names in their initial left-to-right order.
func (m *Model) Names() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of displays.
func (m *Model) Len() int {
	return len(m.order)
}

// Placement returns a copy of the placement for name.
func (m *Model) Placement(name string) (Placement, error) {
	p, ok := m.placements[name]
	if !ok {
		return Placement{}, fmt.Errorf("%w: %q", ErrUnknownDisplay, name)
	}
	return *p, nil
}

// Placements returns copies of all placements in Names order.
func (m *Model) Placements() []Placement {
	out := make([]Placement, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, *m.placements[name])
	}
	return out
}

// Position returns the canvas position of name.
func (m *Model) Position(name string) (Point, error) {
	p, err := m.Placement(name)
	return p.Pos, err
}

// Extent returns the canvas size of name.
func (m *Model) Extent(name string) (Point, error) {
	p, err := m.Placement(name)
	return p.Extent, err
}

// Rotation returns the rotation of name.
func (m *Model) Rotation(name string) (display.Rotation, error) {
	p, err := m.Placement(name)
	return p.Rotation, err
}

// Place clamps (cx, cy) into bounds for the display's extent, stores it and
// returns the stored position.
func (m *Model) Place(name string, cx, cy float64) (Point, error) {
	p, ok := m.placements[name]
	if !ok {
		return Point{}, fmt.Errorf("%w: %q", ErrUnknownDisplay, name)
	}
	p.Pos = m.geom.Clamp(Point{X: cx, Y: cy}, p.Extent)
	return p.Pos, nil
}

// PlaceReal places name at a real compositor position.
func (m *Model) PlaceReal(name string, x, y int) (Point, error) {
	return m.Place(name, float64(x)*m.geom.Scale, float64(y)*m.geom.Scale)
}

// RotateNext advances the rotation of name by a quarter turn. The canvas
// extent is left untouched.
func (m *Model) RotateNext(name string) (display.Rotation, error) {
	p, ok := m.placements[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDisplay, name)
	}
	p.Rotation = p.Rotation.Next()
	return p.Rotation, nil
}

// SetRotation sets the rotation of name directly.
func (m *Model) SetRotation(name string, r display.Rotation) error {
	p, ok := m.placements[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDisplay, name)
	}
	p.Rotation = display.Rotation(r.Degrees() / 90)
	return nil
}

// TopmostAt returns the last display in stacking order whose rect contains pt.
func (m *Model) TopmostAt(pt Point) (string, bool) {
	for i := len(m.order) - 1; i >= 0; i-- {
		name := m.order[i]
		if m.placements[name].Rect().Contains(pt) {
			return name, true
		}
	}
	return "", false
}

// Contained reports whether every display lies inside the canvas bounds.
func (m *Model) Contained() bool {
	bounds := m.geom.Bounds()
	for _, name := range m.order {
		p := m.placements[name]
		r := p.Rect()
		if r.W > bounds.W {
			r.W = 0
		}
		if r.H > bounds.H {
			r.H = 0
		}
		if !r.Within(bounds) {
			return false
		}
	}
	return true
}

// Snapshot converts the canvas state back to real coordinates. Native sizes
// come from the records; positions are round(canvas/scale).
func (m *Model) Snapshot() []display.Record {
	out := make([]display.Record, 0, len(m.order))
	for _, name := range m.order {
		rec := m.records[name]
		p := m.placements[name]
		rec.X = int(math.Round(p.Pos.X / m.geom.Scale))
		rec.Y = int(math.Round(p.Pos.Y / m.geom.Scale))
		rec.Rotation = p.Rotation
		out = append(out, rec)
	}
	return out
}

// Fingerprint hashes the current snapshot. Two models with the same real
// layout share a fingerprint.
func (m *Model) Fingerprint() (uint64, error) {
	return hashstructure.Hash(m.Snapshot(), hashstructure.FormatV2, nil)
}
