package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when a transform name is not a Lua function.
	ErrNotFunction = errors.New("not a lua function")

	// ErrBadReturn is returned when a transform does not return a string.
	ErrBadReturn = errors.New("lua transform must return a string")
)
