package behavior

import (
	"fmt"
	"strconv"
)

// Binding names a target behavior plus up to two parameters.
// Bindings are values: they are copied, never mutated in place.
type Binding struct {
	// Behavior is the name the target is registered under (e.g. "kp").
	Behavior string

	// Param1 and Param2 are behavior-specific parameters.
	Param1 uint32
	Param2 uint32
}

// String renders the binding in keymap notation, e.g. "&kp 0x70050".
func (b Binding) String() string {
	s := "&" + b.Behavior
	if b.Param1 != 0 || b.Param2 != 0 {
		s += " " + strconv.FormatUint(uint64(b.Param1), 10)
	}
	if b.Param2 != 0 {
		s += " " + strconv.FormatUint(uint64(b.Param2), 10)
	}
	return s
}

// IsZero reports whether b names no behavior.
func (b Binding) IsZero() bool {
	return b.Behavior == ""
}

// Event is the context delivered with a press or release.
type Event struct {
	// Position identifies the physical key. A press and its release carry
	// the same position.
	Position uint32

	// Layer is the keymap layer the binding was taken from.
	Layer uint8

	// Timestamp is the event time in milliseconds since boot.
	Timestamp int64
}

// Result tells the caller whether the event was consumed.
type Result uint8

const (
	// Opaque means the event was fully handled and must not be forwarded.
	Opaque Result = iota

	// Transparent means the behavior declined the event.
	Transparent
)

// String returns a string representation of the result.
func (r Result) String() string {
	switch r {
	case Opaque:
		return "opaque"
	case Transparent:
		return "transparent"
	default:
		return fmt.Sprintf("result(%d)", uint8(r))
	}
}

// Invoker activates or deactivates a binding. It is the single primitive the
// behaviors use to reach the action layer.
type Invoker interface {
	Invoke(b Binding, ev Event, pressed bool) (Result, error)
}

// InvokerFunc is a function adapter for Invoker.
type InvokerFunc func(b Binding, ev Event, pressed bool) (Result, error)

// Invoke implements Invoker.Invoke.
func (f InvokerFunc) Invoke(b Binding, ev Event, pressed bool) (Result, error) {
	return f(b, ev, pressed)
}

// Behavior handles the press and release of a binding that targets it.
type Behavior interface {
	// Pressed handles a key press. b is the binding that routed here.
	Pressed(b Binding, ev Event) (Result, error)

	// Released handles the matching key release.
	Released(b Binding, ev Event) (Result, error)
}

// Observer is notified when a behavior drops an event.
type Observer interface {
	// Dropped is called with the behavior name, the event and the reason
	// (ErrResourceExhausted or ErrUnmatchedRelease).
	Dropped(name string, ev Event, reason error)
}

// ObserverFunc is a function adapter for Observer.
type ObserverFunc func(name string, ev Event, reason error)

// Dropped implements Observer.Dropped.
func (f ObserverFunc) Dropped(name string, ev Event, reason error) {
	f(name, ev, reason)
}

// invoke calls inv, failing cleanly when it is missing.
func invoke(inv Invoker, b Binding, ev Event, pressed bool) (Result, error) {
	if inv == nil {
		return Opaque, ErrNoInvoker
	}
	return inv.Invoke(b, ev, pressed)
}
