// Package notify sends desktop notifications over the session D-Bus.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notifyInterface = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	defaultIcon     = "preferences-desktop-display"
)

// caller is the part of dbus.BusObject used here.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Notifier posts notifications. Each new notification replaces the previous
// one so repeated saves do not pile up.
type Notifier struct {
	conn    *dbus.Conn
	obj     caller
	appName string
	timeout time.Duration

	mu     sync.Mutex
	lastID uint32
}

// New connects to the session bus.
func New(appName string) (*Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return &Notifier{
		conn:    conn,
		obj:     conn.Object(notifyInterface, notifyPath),
		appName: appName,
		timeout: 5 * time.Second,
	}, nil
}

// Close closes the D-Bus connection.
func (n *Notifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}

// Notify shows summary and body.
func (n *Notifier) Notify(summary, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(1)),
	}
	call := n.obj.Call(
		notifyInterface+".Notify",
		0,
		n.appName,
		n.lastID,
		defaultIcon,
		summary,
		body,
		[]string{},
		hints,
		int32(n.timeout.Milliseconds()),
	)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("get notification id: %w", err)
	}
	n.lastID = id
	slog.Debug("sent notification", "id", id, "summary", summary)
	return nil
}
