package x11

import (
	"testing"

	"github.com/BurntSushi/xgb/randr"
)

func TestRotationIndex(t *testing.T) {
	tests := []struct {
		bits uint16
		want int
	}{
		{randr.RotationRotate0, 0},
		{randr.RotationRotate90, 1},
		{randr.RotationRotate180, 2},
		{randr.RotationRotate270, 3},
		{randr.RotationRotate90 | randr.RotationReflectX, 1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RotationIndex(tt.bits); got != tt.want {
			t.Errorf("RotationIndex(%#x) = %d, want %d", tt.bits, got, tt.want)
		}
	}
}

func TestNativeSize(t *testing.T) {
	if w, h := NativeSize(1080, 1920, 1); w != 1920 || h != 1080 {
		t.Fatalf("portrait CRTC should map back to 1920x1080, got %dx%d", w, h)
	}
	if w, h := NativeSize(1920, 1080, 2); w != 1920 || h != 1080 {
		t.Fatalf("180° should keep size, got %dx%d", w, h)
	}
}
