package keymap

import "errors"

// Keymap errors.
var (
	// ErrUnknownBehavior indicates a binding names an unregistered behavior.
	ErrUnknownBehavior = errors.New("keymap: unknown behavior")

	// ErrDuplicateBehavior indicates a name was registered twice.
	ErrDuplicateBehavior = errors.New("keymap: behavior already registered")

	// ErrInvalidPosition indicates an event for a position outside the keymap.
	ErrInvalidPosition = errors.New("keymap: invalid key position")

	// ErrMaxDepth indicates bindings nested deeper than the router allows,
	// usually a behavior that reaches itself.
	ErrMaxDepth = errors.New("keymap: binding nesting too deep")
)
