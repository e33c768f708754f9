package interaction

import (
	"math"
	"testing"

	"github.com/cynageos/calibrate/internal/canvas"
	"github.com/cynageos/calibrate/internal/display"
)

type recordingView struct {
	moves      map[string]canvas.Point
	labels     map[string]string
	guides     []Guide
	guidesShow bool
}

func newRecordingView() *recordingView {
	return &recordingView{
		moves:  make(map[string]canvas.Point),
		labels: make(map[string]string),
	}
}

func (v *recordingView) MoveRect(name string, pos canvas.Point) { v.moves[name] = pos }
func (v *recordingView) ShowGuides(g []Guide)                  { v.guides, v.guidesShow = g, true }
func (v *recordingView) HideGuides()                           { v.guides, v.guidesShow = nil, false }
func (v *recordingView) SetLabel(name, text string)            { v.labels[name] = text }

func newTestEditor(t *testing.T) (*Editor, *recordingView) {
	t.Helper()
	reg := display.NewRegistry([]display.Record{
		{Name: "DP-1", Width: 1920, Height: 1080, X: 0, Y: 0},
		{Name: "DP-2", Width: 1920, Height: 1080, X: 1920, Y: 0},
	})
	view := newRecordingView()
	m := canvas.New(canvas.DefaultGeometry(), reg)
	return NewEditor(m, Options{View: view}), view
}

func isMultiple(v, step float64) bool {
	q := v / step
	return math.Abs(q-math.Round(q)) < 1e-9
}

func TestEditor_DragSnapsOnRelease(t *testing.T) {
	e, view := newTestEditor(t)
	m := e.Model()

	if pos, _ := m.Position("DP-2"); pos.X != 192 || pos.Y != 0 {
		t.Fatalf("expected DP-2 at (192,0), got (%v,%v)", pos.X, pos.Y)
	}

	if !e.PointerDown(canvas.Point{X: 200, Y: 50}) {
		t.Fatalf("expected drag to start on DP-2")
	}
	if e.Dragging() != "DP-2" || e.Focused() != "DP-2" {
		t.Fatalf("expected DP-2 dragged and focused, got %q/%q", e.Dragging(), e.Focused())
	}
	if !view.guidesShow || len(view.guides) == 0 {
		t.Fatalf("guides should be visible during drag")
	}

	e.PointerMove(canvas.Point{X: 203, Y: 52})
	if pos, _ := m.Position("DP-2"); pos.X != 195 || pos.Y != 2 {
		t.Fatalf("update should not snap, got (%v,%v)", pos.X, pos.Y)
	}

	e.PointerUp(canvas.Point{X: 203, Y: 52})
	pos, _ := m.Position("DP-2")
	step := m.Geometry().SnapStep()
	if !isMultiple(pos.X, step) || !isMultiple(pos.Y, step) {
		t.Fatalf("release should snap to multiples of %v, got (%v,%v)", step, pos.X, pos.Y)
	}
	if pos.X != 195 || pos.Y != 0 {
		t.Fatalf("expected (195,0), got (%v,%v)", pos.X, pos.Y)
	}
	if view.guidesShow {
		t.Fatalf("guides should be hidden after release")
	}
	if view.moves["DP-2"] != pos {
		t.Fatalf("view not told about final position: %v", view.moves["DP-2"])
	}

	snap := m.Snapshot()
	if snap[1].X != 1950 || snap[1].Y != 0 {
		t.Fatalf("expected real position 1950x0, got %dx%d", snap[1].X, snap[1].Y)
	}
	if c, _ := e.Controller("DP-2"); c.Phase() != PhaseIdle {
		t.Fatalf("controller should be idle after release, got %v", c.Phase())
	}
}

func TestEditor_DragPastEdgeStaysContained(t *testing.T) {
	e, _ := newTestEditor(t)
	m := e.Model()

	e.PointerDown(canvas.Point{X: 10, Y: 10})
	e.PointerMove(canvas.Point{X: 5000, Y: -300})
	if !m.Contained() {
		t.Fatalf("containment violated during drag")
	}
	e.PointerUp(canvas.Point{X: 5000, Y: -300})

	pos, _ := m.Position("DP-1")
	if pos.X != 805 || pos.Y != 0 {
		t.Fatalf("expected snapped edge position (805,0), got (%v,%v)", pos.X, pos.Y)
	}
	if !m.Contained() {
		t.Fatalf("containment violated after release")
	}
}

func TestEditor_PointerDownOnEmptyCanvas(t *testing.T) {
	e, _ := newTestEditor(t)
	if e.PointerDown(canvas.Point{X: 900, Y: 500}) {
		t.Fatalf("expected no drag on empty canvas")
	}
	e.PointerMove(canvas.Point{X: 0, Y: 0})
	e.PointerUp(canvas.Point{X: 0, Y: 0})
	if pos, _ := e.Model().Position("DP-1"); pos.X != 0 || pos.Y != 0 {
		t.Fatalf("idle pointer events must not move displays, got (%v,%v)", pos.X, pos.Y)
	}
}

func TestController_UpdateWhileIdleIgnored(t *testing.T) {
	e, _ := newTestEditor(t)
	c, _ := e.Controller("DP-1")
	c.Update(canvas.Point{X: 300, Y: 300})
	c.End(canvas.Point{X: 300, Y: 300})
	if pos, _ := e.Model().Position("DP-1"); pos.X != 0 || pos.Y != 0 {
		t.Fatalf("expected no movement, got (%v,%v)", pos.X, pos.Y)
	}
}

func TestEditor_KeySteps(t *testing.T) {
	slow, _ := newTestEditor(t)
	for i := 0; i < 25; i++ {
		slow.Key(KeyRight, 0)
	}
	slowPos, _ := slow.Model().Position("DP-1")
	if slowPos.X != 25 {
		t.Fatalf("25 unit moves should move 25, got %v", slowPos.X)
	}

	fast, _ := newTestEditor(t)
	fast.Key(KeyRight, ModFast)
	fastPos, _ := fast.Model().Position("DP-1")
	if fastPos.X != 20 {
		t.Fatalf("one fast move should move 20, got %v", fastPos.X)
	}
	if slowPos == fastPos {
		t.Fatalf("25 single steps should differ from one fast step")
	}
}

func TestEditor_KeyMovesAreClamped(t *testing.T) {
	e, _ := newTestEditor(t)
	for i := 0; i < 10; i++ {
		e.Key(KeyLeft, ModFast)
		e.Key(KeyUp, ModFast)
	}
	pos, _ := e.Model().Position("DP-1")
	if pos.X != 0 || pos.Y != 0 {
		t.Fatalf("expected clamp at origin, got (%v,%v)", pos.X, pos.Y)
	}
	for i := 0; i < 100; i++ {
		e.Key(KeyDown, ModFast)
	}
	pos, _ = e.Model().Position("DP-1")
	if pos.Y != 492 {
		t.Fatalf("expected clamp at bottom 492, got %v", pos.Y)
	}
}

func TestEditor_RotateRelabels(t *testing.T) {
	e, view := newTestEditor(t)
	if view.labels["DP-1"] != "DP-1 0°" {
		t.Fatalf("initial label = %q", view.labels["DP-1"])
	}
	e.Key(KeyRotate, 0)
	if view.labels["DP-1"] != "DP-1 90°" {
		t.Fatalf("label after rotate = %q", view.labels["DP-1"])
	}
	for i := 0; i < 3; i++ {
		e.Key(KeyRotate, 0)
	}
	if got := e.Label("DP-1"); got != "DP-1 0°" {
		t.Fatalf("four rotations should return to 0°, got %q", got)
	}
}

func TestEditor_Focus(t *testing.T) {
	e, _ := newTestEditor(t)
	if e.Focused() != "DP-1" {
		t.Fatalf("expected initial focus DP-1, got %q", e.Focused())
	}
	if got := e.FocusNext(1); got != "DP-2" {
		t.Fatalf("FocusNext(1) = %q", got)
	}
	if got := e.FocusNext(1); got != "DP-1" {
		t.Fatalf("FocusNext should wrap, got %q", got)
	}
	if got := e.FocusNext(-1); got != "DP-2" {
		t.Fatalf("FocusNext(-1) should wrap backwards, got %q", got)
	}
	if got := e.FocusToward(KeyLeft); got != "DP-1" {
		t.Fatalf("FocusToward(left) = %q", got)
	}
	if got := e.FocusToward(KeyLeft); got != "DP-1" {
		t.Fatalf("focus should stay when nothing lies left, got %q", got)
	}
	if e.Focus("nope") {
		t.Fatalf("focusing an unknown display should fail")
	}
	if name, ok := e.Click(canvas.Point{X: 250, Y: 20}); !ok || name != "DP-2" {
		t.Fatalf("Click = %q, %v", name, ok)
	}
}

func TestGuides(t *testing.T) {
	g := canvas.Geometry{Scale: 0.1, Width: 20, Height: 10, SnapUnit: 50}
	guides := Guides(g)
	var vertical, horizontal int
	for _, gd := range guides {
		if gd.Orientation == Vertical {
			vertical++
		} else {
			horizontal++
		}
	}
	if vertical != 5 || horizontal != 3 {
		t.Fatalf("expected 5 vertical and 3 horizontal guides, got %d and %d", vertical, horizontal)
	}
}
