package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/rangescan/internal/watcher"
)

// watchBufferSize covers the bursts one save produces for a single file.
const watchBufferSize = 16

// Watch calls onChange each time the file at path changes, until ctx is
// done. Bursts of events are coalesced using the configured debounce delay.
// Errors from onChange are logged and do not stop watching.
func (a *App) Watch(ctx context.Context, path string, onChange func() error) error {
	fsw, err := watcher.NewFSNotifyWatcher(watcher.WithBufferSize(watchBufferSize))
	if err != nil {
		return err
	}
	w := watcher.NewDebouncedWatcher(fsw, a.cfg.Watch.Debounce.Std())
	defer w.Close()

	if err := w.WatchFile(path); err != nil {
		return err
	}
	a.logger.Info("watching", zap.String("path", path))

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case ev, ok := <-w.Events():
			if !ok {
				return watcher.ErrWatcherClosed
			}
			if !ev.Op.ChangesContent() {
				continue
			}
			a.logger.Debug("input changed", zap.String("path", ev.Path), zap.Stringer("op", ev.Op))
			if err := onChange(); err != nil {
				a.logger.Warn("re-run failed", zap.String("path", ev.Path), zap.Error(err))
			}

		case err, ok := <-w.Errors():
			if !ok {
				return watcher.ErrWatcherClosed
			}
			a.logger.Warn("watcher error", zap.Error(err))
		}
	}
}
