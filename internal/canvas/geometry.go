package canvas

import "math"

// Default geometry values.
const (
	DefaultScale    = 0.1
	DefaultWidth    = 1000.0
	DefaultHeight   = 600.0
	DefaultSnapUnit = 50
)

// Geometry describes the canvas: its bounds in canvas units, the real-to-canvas
// scale factor and the snap grid in real units.
type Geometry struct {
	Scale    float64
	Width    float64
	Height   float64
	SnapUnit int
}

// DefaultGeometry returns the stock canvas geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		Scale:    DefaultScale,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		SnapUnit: DefaultSnapUnit,
	}
}

// SnapStep is the snap grid spacing in canvas units.
func (g Geometry) SnapStep() float64 {
	return g.Scale * float64(g.SnapUnit)
}

// Bounds returns the canvas rectangle anchored at the origin.
func (g Geometry) Bounds() Rect {
	return Rect{W: g.Width, H: g.Height}
}

// withDefaults fills zero or negative fields from DefaultGeometry.
func (g Geometry) withDefaults() Geometry {
	d := DefaultGeometry()
	if g.Scale <= 0 {
		g.Scale = d.Scale
	}
	if g.Width <= 0 {
		g.Width = d.Width
	}
	if g.Height <= 0 {
		g.Height = d.Height
	}
	if g.SnapUnit <= 0 {
		g.SnapUnit = d.SnapUnit
	}
	return g
}

// Point is a canvas coordinate.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle in canvas units.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Within reports whether r lies fully inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.W <= outer.X+outer.W && r.Y+r.H <= outer.Y+outer.H
}

// ClampAxis limits v to [0, bound-extent]. When extent exceeds bound the
// result is pinned to 0.
func ClampAxis(v, extent, bound float64) float64 {
	limit := bound - extent
	if limit < 0 {
		return 0
	}
	return math.Max(0, math.Min(v, limit))
}

// Clamp moves the origin of a rect of size ext so that it stays inside g.
func (g Geometry) Clamp(p Point, ext Point) Point {
	return Point{
		X: ClampAxis(p.X, ext.X, g.Width),
		Y: ClampAxis(p.Y, ext.Y, g.Height),
	}
}

// SnapWithin rounds v to the nearest multiple of step. If that multiple
// exceeds max the largest multiple not above max is used instead. The result
// is never negative.
func SnapWithin(v, step, max float64) float64 {
	if step <= 0 {
		return v
	}
	n := math.Round(v/step) * step
	if n > max {
		n = math.Floor(max/step) * step
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Snap aligns p to the snap grid while keeping a rect of size ext inside g.
func (g Geometry) Snap(p Point, ext Point) Point {
	step := g.SnapStep()
	return Point{
		X: SnapWithin(p.X, step, math.Max(0, g.Width-ext.X)),
		Y: SnapWithin(p.Y, step, math.Max(0, g.Height-ext.Y)),
	}
}
