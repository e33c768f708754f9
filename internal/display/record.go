package display

import (
	"fmt"
	"sort"
)

// Rotation is a display transform index: 0=0°, 1=90°, 2=180°, 3=270°.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
	rotationCount
)

// Next advances the rotation by a quarter turn, wrapping after 270°.
func (r Rotation) Next() Rotation {
	return (r.normalized() + 1) % rotationCount
}

// Degrees returns the rotation angle.
func (r Rotation) Degrees() int {
	return int(r.normalized()) * 90
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", r.Degrees())
}

func (r Rotation) normalized() Rotation {
	if r < 0 || r >= rotationCount {
		return Rotate0
	}
	return r
}

// Record describes one physical output as reported by the backend.
// X and Y are real compositor coordinates.
type Record struct {
	Name     string
	Width    int
	Height   int
	X        int
	Y        int
	Rotation Rotation
}

// Registry holds the displays of one enumeration keyed by name.
type Registry struct {
	records map[string]Record
	order   []string
}

// NewRegistry builds a registry. Later duplicates of a name replace earlier ones.
func NewRegistry(records []Record) *Registry {
	r := &Registry{records: make(map[string]Record, len(records))}
	for _, rec := range records {
		if _, ok := r.records[rec.Name]; !ok {
			r.order = append(r.order, rec.Name)
		}
		r.records[rec.Name] = rec
	}
	return r
}

// Len returns the number of displays.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Get returns the record for name.
func (r *Registry) Get(name string) (Record, bool) {
	if r == nil {
		return Record{}, false
	}
	rec, ok := r.records[name]
	return rec, ok
}

// Names returns display names ordered left-to-right, then top-to-bottom.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := append([]string(nil), r.order...)
	sort.SliceStable(names, func(i, j int) bool {
		a, b := r.records[names[i]], r.records[names[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Name < b.Name
	})
	return names
}

// Records returns a copy of all records in Names order.
func (r *Registry) Records() []Record {
	names := r.Names()
	out := make([]Record, 0, len(names))
	for _, name := range names {
		out = append(out, r.records[name])
	}
	return out
}

// Scaled returns the initial canvas position of rec for the given scale.
func Scaled(rec Record, scale float64) (float64, float64) {
	return float64(rec.X) * scale, float64(rec.Y) * scale
}
