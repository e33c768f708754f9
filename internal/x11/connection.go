// Package x11 reads the RandR output layout of an X server.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection is an open X display with its root window.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection connects to display, or to $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	dial := xgbutil.NewConn
	if display != "" {
		dial = func() (*xgbutil.XUtil, error) { return xgbutil.NewConnDisplay(display) }
	}
	xu, err := dial()
	if err != nil {
		return nil, fmt.Errorf("connect %q: %w", display, err)
	}
	return &Connection{XUtil: xu, Root: xu.RootWin()}, nil
}

func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
