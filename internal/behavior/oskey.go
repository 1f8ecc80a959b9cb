package behavior

import (
	"github.com/dshills/oskey/internal/osstate"
)

// OSKeyConfig configures an OSKey instance.
type OSKeyConfig struct {
	// Name is used in log output and drop reports.
	Name string

	// Candidate bindings, one per OS.
	Windows Binding
	MacOS   Binding
	Linux   Binding

	// Observer is notified of dropped presses and releases. Optional.
	Observer Observer
}

// OSKey invokes one of three bindings depending on the OS selected when the
// key is pressed.
//
// The binding chosen at press time is stored per position, and the release
// goes to that stored binding. Changing the OS while the key is held does not
// change which binding is released.
type OSKey struct {
	cfg     OSKeyConfig
	store   *osstate.Store
	invoker Invoker

	// Each instance owns its table. Two instances may see the same
	// position without colliding.
	active ActiveTable
}

// NewOSKey creates an OS-aware key reading store and invoking through inv.
func NewOSKey(cfg OSKeyConfig, store *osstate.Store, inv Invoker) *OSKey {
	return &OSKey{
		cfg:     cfg,
		store:   store,
		invoker: inv,
	}
}

// Config returns the key configuration.
func (k *OSKey) Config() OSKeyConfig {
	return k.cfg
}

// Resolve returns the candidate binding for o. Unknown values fall back to
// the Windows binding.
func (k *OSKey) Resolve(o osstate.OS) Binding {
	switch o {
	case osstate.MacOS:
		return k.cfg.MacOS
	case osstate.Linux:
		return k.cfg.Linux
	default:
		return k.cfg.Windows
	}
}

// Active returns the number of presses currently held on this key.
func (k *OSKey) Active() int {
	return k.active.Len()
}

// Pressed implements Behavior.Pressed.
func (k *OSKey) Pressed(_ Binding, ev Event) (Result, error) {
	target := k.Resolve(k.store.Get())

	slot := k.active.Allocate(ev.Position, target)
	if slot == nil {
		logger.Error("no free active-key slots", "behavior", k.cfg.Name, "position", ev.Position)
		k.dropped(ev, ErrResourceExhausted)
		return Opaque, nil
	}

	return invoke(k.invoker, slot.Binding(), ev, true)
}

// Released implements Behavior.Released.
func (k *OSKey) Released(_ Binding, ev Event) (Result, error) {
	slot := k.active.Find(ev.Position)
	if slot == nil {
		logger.Error("release with no matching press", "behavior", k.cfg.Name, "position", ev.Position)
		k.dropped(ev, ErrUnmatchedRelease)
		return Opaque, nil
	}

	target := slot.Binding()
	res, err := invoke(k.invoker, target, ev, false)
	k.active.Release(slot)
	return res, err
}

func (k *OSKey) dropped(ev Event, reason error) {
	if k.cfg.Observer != nil {
		k.cfg.Observer.Dropped(k.cfg.Name, ev, reason)
	}
}
