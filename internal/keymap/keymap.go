package keymap

import (
	"fmt"
	"time"

	"github.com/dshills/oskey/internal/behavior"
)

// Keymap maps key positions to bindings and delivers events to them.
type Keymap struct {
	router   *Router
	bindings []behavior.Binding
	start    time.Time
}

// New creates a keymap whose position i is bound to bindings[i].
func New(router *Router, bindings []behavior.Binding) *Keymap {
	bs := make([]behavior.Binding, len(bindings))
	copy(bs, bindings)
	return &Keymap{
		router:   router,
		bindings: bs,
		start:    time.Now(),
	}
}

// Router returns the keymap's router.
func (k *Keymap) Router() *Router {
	return k.router
}

// Len returns the number of positions.
func (k *Keymap) Len() int {
	return len(k.bindings)
}

// Binding returns the binding at position.
func (k *Keymap) Binding(position uint32) (behavior.Binding, bool) {
	if int(position) >= len(k.bindings) {
		return behavior.Binding{}, false
	}
	return k.bindings[position], true
}

// Press delivers a key press at position.
func (k *Keymap) Press(position uint32) (behavior.Result, error) {
	return k.deliver(position, true)
}

// Release delivers a key release at position.
func (k *Keymap) Release(position uint32) (behavior.Result, error) {
	return k.deliver(position, false)
}

func (k *Keymap) deliver(position uint32, pressed bool) (behavior.Result, error) {
	b, ok := k.Binding(position)
	if !ok {
		return behavior.Opaque, fmt.Errorf("%w: %d (keymap has %d)", ErrInvalidPosition, position, len(k.bindings))
	}
	if b.IsZero() {
		return behavior.Transparent, nil
	}

	ev := behavior.Event{
		Position:  position,
		Timestamp: time.Since(k.start).Milliseconds(),
	}
	return k.router.Invoke(b, ev, pressed)
}
