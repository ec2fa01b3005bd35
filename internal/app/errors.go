package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoInput is returned when no input file is given and stdin is a
	// terminal.
	ErrNoInput = errors.New("no input: pass a file or pipe content on stdin")

	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("app is closed")
)

// RunError reports a failed run.
type RunError struct {
	RunID string // Identifier of the failed run
	Mode  string // Configured mode
	Err   error  // Underlying error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s (%s): %v", e.RunID, e.Mode, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
