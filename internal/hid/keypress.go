// Package hid provides the key-press action layer: HID usage tables, a
// keycode parser, and the "kp" behavior that turns bindings into report
// changes delivered to a Sink.
package hid

import (
	"errors"
	"fmt"

	"github.com/dshills/oskey/internal/behavior"
)

// ErrNotPressed indicates a release for a key that is not held.
var ErrNotPressed = errors.New("hid: release of key that is not pressed")

// Report describes one change to the host-visible key state.
type Report struct {
	// Page and Usage identify the key that changed.
	Page  uint16
	Usage uint16

	// Pressed is true for key down, false for key up.
	Pressed bool

	// Modifiers is the effective modifier byte after the change.
	Modifiers Modifier
}

// String renders the report, e.g. "down LC(LEFT) [LCtrl]".
func (r Report) String() string {
	dir := "up"
	if r.Pressed {
		dir = "down"
	}
	s := dir + " " + NewKeycode(r.Page, r.Usage, 0).String()
	if r.Modifiers != 0 {
		s += " [" + r.Modifiers.String() + "]"
	}
	return s
}

// Sink receives reports. A failing sink fails the key press or release
// that produced the report.
type Sink interface {
	Send(r Report) error
}

// SinkFunc is a function adapter for Sink.
type SinkFunc func(r Report) error

// Send implements Sink.Send.
func (f SinkFunc) Send(r Report) error {
	return f(r)
}

// Recorder is a Sink that keeps every report.
type Recorder struct {
	Reports []Report
}

// Send implements Sink.Send.
func (r *Recorder) Send(rep Report) error {
	r.Reports = append(r.Reports, rep)
	return nil
}

// Reset discards recorded reports.
func (r *Recorder) Reset() {
	r.Reports = nil
}

// Strings returns the recorded reports rendered with Report.String.
func (r *Recorder) Strings() []string {
	out := make([]string, len(r.Reports))
	for i, rep := range r.Reports {
		out[i] = rep.String()
	}
	return out
}

// pageUsage identifies a key independent of implicit modifiers.
type pageUsage struct {
	page  uint16
	usage uint16
}

// KeyPress is the "kp" behavior. Param1 of the binding is a Keycode.
//
// Held keys and modifiers are reference counted, so two bindings that press
// the same key only release it when both have been released.
type KeyPress struct {
	sink Sink

	held      map[pageUsage]int
	explicit  [8]int
	implicit  [8]int
	heldOrder []pageUsage
}

// NewKeyPress creates a key-press behavior writing to sink.
func NewKeyPress(sink Sink) *KeyPress {
	return &KeyPress{
		sink: sink,
		held: make(map[pageUsage]int),
	}
}

// Modifiers returns the effective modifier byte.
func (k *KeyPress) Modifiers() Modifier {
	var m Modifier
	for i := 0; i < 8; i++ {
		if k.explicit[i] > 0 || k.implicit[i] > 0 {
			m |= 1 << i
		}
	}
	return m
}

// Held returns the currently pressed keys in press order.
func (k *KeyPress) Held() []Keycode {
	out := make([]Keycode, 0, len(k.heldOrder))
	for _, pu := range k.heldOrder {
		out = append(out, NewKeycode(pu.page, pu.usage, 0))
	}
	return out
}

// Pressed implements behavior.Behavior.
func (k *KeyPress) Pressed(b behavior.Binding, ev behavior.Event) (behavior.Result, error) {
	code := Keycode(b.Param1)
	pu := pageUsage{page: code.Page(), usage: code.Usage()}

	k.adjust(code.Modifiers(), k.implicit[:], 1)
	if pu.page == PageKeyboard {
		if mod, ok := modifierFor(pu.usage); ok {
			k.adjust(mod, k.explicit[:], 1)
		}
	}

	if k.held[pu] == 0 {
		k.heldOrder = append(k.heldOrder, pu)
	}
	k.held[pu]++

	if err := k.send(pu, true); err != nil {
		return behavior.Opaque, err
	}
	return behavior.Opaque, nil
}

// Released implements behavior.Behavior.
func (k *KeyPress) Released(b behavior.Binding, ev behavior.Event) (behavior.Result, error) {
	code := Keycode(b.Param1)
	pu := pageUsage{page: code.Page(), usage: code.Usage()}

	if k.held[pu] == 0 {
		return behavior.Opaque, fmt.Errorf("%w: %s", ErrNotPressed, code)
	}

	k.held[pu]--
	if k.held[pu] == 0 {
		delete(k.held, pu)
		k.dropOrder(pu)
	}

	k.adjust(code.Modifiers(), k.implicit[:], -1)
	if pu.page == PageKeyboard {
		if mod, ok := modifierFor(pu.usage); ok {
			k.adjust(mod, k.explicit[:], -1)
		}
	}

	if err := k.send(pu, false); err != nil {
		return behavior.Opaque, err
	}
	return behavior.Opaque, nil
}

func (k *KeyPress) adjust(mods Modifier, counts []int, delta int) {
	for i := 0; i < 8; i++ {
		if mods&(1<<i) != 0 {
			counts[i] += delta
			if counts[i] < 0 {
				counts[i] = 0
			}
		}
	}
}

func (k *KeyPress) dropOrder(pu pageUsage) {
	for i, held := range k.heldOrder {
		if held == pu {
			k.heldOrder = append(k.heldOrder[:i], k.heldOrder[i+1:]...)
			return
		}
	}
}

func (k *KeyPress) send(pu pageUsage, pressed bool) error {
	if k.sink == nil {
		return nil
	}
	return k.sink.Send(Report{
		Page:      pu.page,
		Usage:     pu.usage,
		Pressed:   pressed,
		Modifiers: k.Modifiers(),
	})
}
