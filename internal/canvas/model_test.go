package canvas

import (
	"errors"
	"testing"

	"github.com/cynageos/calibrate/internal/display"
)

func twoDisplays() *display.Registry {
	return display.NewRegistry([]display.Record{
		{Name: "DP-1", Width: 1920, Height: 1080, X: 0, Y: 0},
		{Name: "DP-2", Width: 1920, Height: 1080, X: 1920, Y: 0},
	})
}

func TestNew_ScalesInitialPositions(t *testing.T) {
	m := New(DefaultGeometry(), twoDisplays())

	pos, err := m.Position("DP-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.X != 192 || pos.Y != 0 {
		t.Fatalf("expected DP-2 at (192,0), got (%v,%v)", pos.X, pos.Y)
	}
	ext, _ := m.Extent("DP-1")
	if ext.X != 192 || ext.Y != 108 {
		t.Fatalf("expected extent 192x108, got %vx%v", ext.X, ext.Y)
	}
}

func TestNew_ClampsOutOfBoundsRecords(t *testing.T) {
	reg := display.NewRegistry([]display.Record{
		{Name: "far", Width: 1920, Height: 1080, X: 20000, Y: -500},
	})
	m := New(DefaultGeometry(), reg)
	pos, _ := m.Position("far")
	if pos.X != 1000-192 || pos.Y != 0 {
		t.Fatalf("expected clamp to (808,0), got (%v,%v)", pos.X, pos.Y)
	}
	if !m.Contained() {
		t.Fatalf("model should be contained after New")
	}
}

func TestPlace_Clamps(t *testing.T) {
	m := New(DefaultGeometry(), twoDisplays())

	tests := []struct {
		name   string
		cx, cy float64
		wantX  float64
		wantY  float64
	}{
		{"inside", 100, 50, 100, 50},
		{"negative", -40, -1, 0, 0},
		{"past right edge", 990, 10, 808, 10},
		{"past bottom edge", 10, 590, 10, 492},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Place("DP-1", tt.cx, tt.cy)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.X != tt.wantX || got.Y != tt.wantY {
				t.Fatalf("Place(%v,%v) = (%v,%v), want (%v,%v)", tt.cx, tt.cy, got.X, got.Y, tt.wantX, tt.wantY)
			}
			if !m.Contained() {
				t.Fatalf("containment violated after Place")
			}
		})
	}
}

func TestPlace_OversizedDisplayPinsToZero(t *testing.T) {
	reg := display.NewRegistry([]display.Record{
		{Name: "wall", Width: 15360, Height: 2160},
	})
	m := New(DefaultGeometry(), reg)
	got, err := m.Place("wall", 300, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.X != 0 || got.Y != 40 {
		t.Fatalf("expected (0,40), got (%v,%v)", got.X, got.Y)
	}
}

func TestUnknownDisplay(t *testing.T) {
	m := New(DefaultGeometry(), twoDisplays())
	if _, err := m.Place("HDMI-A-9", 0, 0); !errors.Is(err, ErrUnknownDisplay) {
		t.Fatalf("Place: expected ErrUnknownDisplay, got %v", err)
	}
	if _, err := m.RotateNext("HDMI-A-9"); !errors.Is(err, ErrUnknownDisplay) {
		t.Fatalf("RotateNext: expected ErrUnknownDisplay, got %v", err)
	}
}

func TestRotateNext_MetadataOnly(t *testing.T) {
	m := New(DefaultGeometry(), twoDisplays())
	before, _ := m.Extent("DP-1")

	for i := 0; i < 4; i++ {
		if _, err := m.RotateNext("DP-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	r, _ := m.Rotation("DP-1")
	if r != display.Rotate0 {
		t.Fatalf("four rotations should return to 0°, got %v", r)
	}
	after, _ := m.Extent("DP-1")
	if before != after {
		t.Fatalf("rotation changed extent: %v -> %v", before, after)
	}
}

func TestSnapshot_RoundsToRealCoordinates(t *testing.T) {
	m := New(DefaultGeometry(), twoDisplays())
	if _, err := m.Place("DP-2", 195.04, 2.06); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = m.RotateNext("DP-2")

	snap := m.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap))
	}
	got := snap[1]
	want := display.Record{Name: "DP-2", Width: 1920, Height: 1080, X: 1950, Y: 21, Rotation: display.Rotate90}
	if got != want {
		t.Fatalf("snapshot = %+v, want %+v", got, want)
	}
}

func TestFingerprint_TracksRealLayout(t *testing.T) {
	a := New(DefaultGeometry(), twoDisplays())
	b := New(DefaultGeometry(), twoDisplays())

	fa, err := a.Fingerprint()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb, _ := b.Fingerprint()
	if fa != fb {
		t.Fatalf("identical layouts should share a fingerprint")
	}

	_, _ = b.Place("DP-2", 300, 0)
	fb, _ = b.Fingerprint()
	if fa == fb {
		t.Fatalf("moved layout should change the fingerprint")
	}
}

func TestTopmostAt(t *testing.T) {
	m := New(DefaultGeometry(), twoDisplays())
	_, _ = m.Place("DP-2", 100, 0)

	name, ok := m.TopmostAt(Point{X: 150, Y: 10})
	if !ok || name != "DP-2" {
		t.Fatalf("expected DP-2 on top, got %q (%v)", name, ok)
	}
	if _, ok := m.TopmostAt(Point{X: 900, Y: 500}); ok {
		t.Fatalf("expected no display at empty canvas point")
	}
}
