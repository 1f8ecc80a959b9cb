package replay

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax indicates a script line that cannot be parsed.
	ErrSyntax = errors.New("replay: syntax error")

	// ErrEmptyScript indicates a script with no steps.
	ErrEmptyScript = errors.New("replay: script has no steps")

	// ErrNoKeyboard indicates a session created without a keyboard.
	ErrNoKeyboard = errors.New("replay: no keyboard")
)

// ScriptError locates a syntax error in a script.
type ScriptError struct {
	Name    string
	Line    int
	Message string
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Message)
}

// Unwrap returns ErrSyntax.
func (e *ScriptError) Unwrap() error {
	return ErrSyntax
}
