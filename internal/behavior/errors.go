package behavior

import "errors"

// Behavior errors.
var (
	// ErrResourceExhausted indicates a press arrived while every active-key
	// slot was occupied. The press is dropped.
	ErrResourceExhausted = errors.New("behavior: no free active-key slots")

	// ErrUnmatchedRelease indicates a release for a position with no
	// recorded press. The release is dropped.
	ErrUnmatchedRelease = errors.New("behavior: release with no matching press")

	// ErrInvalidParam indicates a binding parameter outside the accepted range.
	ErrInvalidParam = errors.New("behavior: invalid binding parameter")

	// ErrNoInvoker indicates a behavior was built without an Invoker.
	ErrNoInvoker = errors.New("behavior: no invoker configured")
)
