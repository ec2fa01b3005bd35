package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is used when NewDebouncedWatcher is given no delay.
const DefaultDebounceDelay = 100 * time.Millisecond

// DebouncedWatcher wraps a Watcher and coalesces rapid changes to the same
// file into one event carrying the union of their operations.
type DebouncedWatcher struct {
	inner Watcher

	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingEvent
	events  chan Event
	errors  chan error
	closed  bool

	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

// NewDebouncedWatcher wraps inner. A non-positive delay selects
// DefaultDebounceDelay.
func NewDebouncedWatcher(inner Watcher, delay time.Duration) *DebouncedWatcher {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}

	dw := &DebouncedWatcher{
		inner:   inner,
		delay:   delay,
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, 100),
		errors:  make(chan error, 100),
		closeCh: make(chan struct{}),
	}

	dw.closedWg.Add(1)
	go dw.processLoop()

	return dw
}

// WatchFile starts watching a file.
func (dw *DebouncedWatcher) WatchFile(path string) error {
	return dw.inner.WatchFile(path)
}

// Unwatch stops watching a file.
func (dw *DebouncedWatcher) Unwatch(path string) error {
	return dw.inner.Unwatch(path)
}

// Events returns the debounced event channel.
func (dw *DebouncedWatcher) Events() <-chan Event {
	return dw.events
}

// Errors returns the error channel.
func (dw *DebouncedWatcher) Errors() <-chan error {
	return dw.errors
}

// Close drops pending events and closes the inner watcher.
func (dw *DebouncedWatcher) Close() error {
	dw.mu.Lock()
	if dw.closed {
		dw.mu.Unlock()
		return nil
	}
	dw.closed = true
	close(dw.closeCh)
	for path, p := range dw.pending {
		p.timer.Stop()
		delete(dw.pending, path)
	}
	dw.mu.Unlock()

	dw.closedWg.Wait()

	// Timers that already fired check closed under mu before sending.
	dw.mu.Lock()
	close(dw.events)
	close(dw.errors)
	dw.mu.Unlock()

	return dw.inner.Close()
}

func (dw *DebouncedWatcher) processLoop() {
	defer dw.closedWg.Done()

	for {
		select {
		case <-dw.closeCh:
			return

		case event, ok := <-dw.inner.Events():
			if !ok {
				return
			}
			dw.handleEvent(event)

		case err, ok := <-dw.inner.Errors():
			if !ok {
				return
			}
			dw.forwardError(err)
		}
	}
}

func (dw *DebouncedWatcher) handleEvent(event Event) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.closed {
		return
	}

	if p, ok := dw.pending[event.Path]; ok {
		p.event.Op |= event.Op
		p.event.Timestamp = event.Timestamp
		p.timer.Reset(dw.delay)
		return
	}

	path := event.Path
	dw.pending[path] = &pendingEvent{
		event: event,
		timer: time.AfterFunc(dw.delay, func() { dw.fire(path) }),
	}
}

// fire sends the pending event for path, dropping it if the channel is full.
func (dw *DebouncedWatcher) fire(path string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	p, ok := dw.pending[path]
	if !ok || dw.closed {
		return
	}
	delete(dw.pending, path)

	select {
	case dw.events <- p.event:
	default:
	}
}

func (dw *DebouncedWatcher) forwardError(err error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.closed {
		return
	}
	select {
	case dw.errors <- err:
	default:
	}
}

var _ Watcher = (*DebouncedWatcher)(nil)
