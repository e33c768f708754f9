package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor is one enabled RandR output. Width and Height are the native
// (unrotated) mode size; Rotation is a quarter-turn index 0..3.
type Monitor struct {
	Name     string
	X        int
	Y        int
	Width    int
	Height   int
	Rotation int
}

// GetMonitors lists every connected output that is driven by a CRTC.
// Outputs sharing a CRTC (mirrors) are each reported with the CRTC geometry.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	xc := c.XUtil.Conn()
	if err := randr.Init(xc); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	res, err := randr.GetScreenResources(xc, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	crtcs := make(map[randr.Crtc]*randr.GetCrtcInfoReply)
	var monitors []Monitor
	for _, out := range res.Outputs {
		info, err := randr.GetOutputInfo(xc, out, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}

		crtc, ok := crtcs[info.Crtc]
		if !ok {
			crtc, err = randr.GetCrtcInfo(xc, info.Crtc, res.ConfigTimestamp).Reply()
			if err != nil {
				continue
			}
			crtcs[info.Crtc] = crtc
		}
		if crtc.Width == 0 || crtc.Height == 0 {
			continue
		}

		rot := RotationIndex(crtc.Rotation)
		w, h := NativeSize(int(crtc.Width), int(crtc.Height), rot)
		monitors = append(monitors, Monitor{
			Name:     string(info.Name),
			X:        int(crtc.X),
			Y:        int(crtc.Y),
			Width:    w,
			Height:   h,
			Rotation: rot,
		})
	}
	return monitors, nil
}

// RotationIndex converts RandR rotation bits to a quarter-turn index.
// Reflection bits are ignored.
func RotationIndex(bits uint16) int {
	switch {
	case bits&randr.RotationRotate90 != 0:
		return 1
	case bits&randr.RotationRotate180 != 0:
		return 2
	case bits&randr.RotationRotate270 != 0:
		return 3
	default:
		return 0
	}
}

// NativeSize undoes the width/height swap RandR applies to CRTCs rotated by
// 90° or 270°.
func NativeSize(w, h, rotation int) (int, int) {
	if rotation%2 == 1 {
		return h, w
	}
	return w, h
}
