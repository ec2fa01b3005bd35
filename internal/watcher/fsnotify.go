package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSNotifyWatcher implements Watcher using fsnotify.
type FSNotifyWatcher struct {
	mu sync.RWMutex

	watcher *fsnotify.Watcher

	// Watched files, and how many of them live in each directory.
	files map[string]bool
	dirs  map[string]int

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFSNotifyWatcher creates a new fsnotify-based watcher.
func NewFSNotifyWatcher(opts ...Option) (*FSNotifyWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	bufSize := config.BufferSize
	if bufSize <= 0 {
		bufSize = 100
	}

	w := &FSNotifyWatcher{
		watcher: fsw,
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		events:  make(chan Event, bufSize),
		errors:  make(chan error, bufSize),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// WatchFile starts watching a file by watching its directory.
func (w *FSNotifyWatcher) WatchFile(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}
	if w.files[absPath] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true
	return nil
}

// Unwatch stops watching a file.
func (w *FSNotifyWatcher) Unwatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !w.files[absPath] {
		return ErrNotWatching
	}

	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		if err := w.watcher.Remove(dir); err != nil {
			return err
		}
	}
	delete(w.files, absPath)
	return nil
}

// IsWatching returns true if the file is being watched.
func (w *FSNotifyWatcher) IsWatching(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.files[absPath]
}

// Events returns the event channel.
func (w *FSNotifyWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel.
func (w *FSNotifyWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *FSNotifyWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

// processLoop handles incoming fsnotify events.
func (w *FSNotifyWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleFSEvent converts an fsnotify event and forwards it if it concerns a
// watched file.
func (w *FSNotifyWatcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}

	path, err := filepath.Abs(fsEvent.Name)
	if err != nil {
		return
	}

	w.mu.RLock()
	watched := w.files[path]
	w.mu.RUnlock()
	if !watched {
		return
	}

	w.sendEvent(Event{
		Path:      path,
		Op:        op,
		Timestamp: time.Now(),
	})
}

// convertOp converts fsnotify.Op to watcher.Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}

// sendEvent sends an event to the output channel, dropping it when full.
func (w *FSNotifyWatcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	default:
	}
}

// sendError sends an error to the output channel, dropping it when full.
func (w *FSNotifyWatcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// Ensure FSNotifyWatcher implements Watcher.
var _ Watcher = (*FSNotifyWatcher)(nil)
