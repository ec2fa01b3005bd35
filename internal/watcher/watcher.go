// Package watcher reports changes to the files rangescan reads.
//
// Editors often save by writing a temporary file and renaming it over the
// original, which drops a watch placed on the file itself. WatchFile
// therefore watches the parent directory and only reports events for the
// requested file. DebouncedWatcher coalesces the burst of events a single
// save produces into one.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// ChangesContent reports whether the operation may have changed what a
// reader of the file would see.
func (op Op) ChangesContent() bool {
	return op&(OpCreate|OpWrite|OpRename) != 0
}

// Event represents a file system change event.
type Event struct {
	// Path is the absolute path of the affected file.
	Path string

	// Op is the operation that occurred.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher monitors file changes.
type Watcher interface {
	// WatchFile starts watching a single file.
	// Returns ErrAlreadyWatching if the file is already being watched.
	WatchFile(path string) error

	// Unwatch stops watching a file.
	// Returns ErrNotWatching if the file isn't being watched.
	Unwatch(path string) error

	// Events returns the channel of file change events.
	// The channel is closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel of watcher errors.
	// The channel is closed when the watcher is closed.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error
}

// Config holds watcher configuration options.
type Config struct {
	// BufferSize is the size of the event and error channels.
	// Default: 100
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BufferSize: 100,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}
