package app

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// StdinPath selects standard input in ReadInput.
const StdinPath = "-"

// fdReader is satisfied by *os.File.
type fdReader interface {
	io.Reader
	Fd() uintptr
}

// ReadInput returns the content of path, or of stdin when path is empty or
// StdinPath. Reading from a stdin that is a terminal fails with ErrNoInput
// instead of waiting for the user to type.
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path != "" && path != StdinPath {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return string(data), nil
	}

	if f, ok := stdin.(fdReader); ok && term.IsTerminal(int(f.Fd())) {
		return "", ErrNoInput
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
