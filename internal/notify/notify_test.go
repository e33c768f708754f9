package notify

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
)

type fakeBus struct {
	calls   [][]interface{}
	nextID  uint32
	failErr error
}

func (f *fakeBus) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, args)
	if f.failErr != nil {
		return &dbus.Call{Err: f.failErr}
	}
	f.nextID++
	return &dbus.Call{Body: []interface{}{f.nextID}}
}

func TestNotify_ReplacesPreviousNotification(t *testing.T) {
	bus := &fakeBus{}
	n := &Notifier{obj: bus, appName: "calibrate"}

	if err := n.Notify("Display layout saved", "first"); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if err := n.Notify("Display layout saved", "second"); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if len(bus.calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(bus.calls))
	}
	if got := bus.calls[0][1].(uint32); got != 0 {
		t.Fatalf("first notification should not replace anything, got %d", got)
	}
	if got := bus.calls[1][1].(uint32); got != 1 {
		t.Fatalf("second notification should replace id 1, got %d", got)
	}
	if got := bus.calls[1][4].(string); got != "second" {
		t.Fatalf("body = %q", got)
	}
}

func TestNotify_PropagatesBusError(t *testing.T) {
	n := &Notifier{obj: &fakeBus{failErr: errors.New("no daemon")}}
	if err := n.Notify("x", "y"); err == nil {
		t.Fatalf("expected error")
	}
	if err := n.Close(); err != nil {
		t.Fatalf("Close() on unconnected notifier: %v", err)
	}
}
