package holiday

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the holiday file into s whenever it changes on disk, until
// ctx is cancelled. Editors often replace files via rename, so rename and
// create events on the watched path are treated like writes. Reload errors
// are logged and the previous record stays active.
func Watch(ctx context.Context, s *Source, path string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return err
	}

	logger.Info("holiday watcher: started", slog.String("path", path))

	// Debounce bursts of write events from a single save.
	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("holiday watcher: stopped")
			return nil

		case <-reloadCh:
			if err := s.LoadFile(path); err != nil {
				logger.Warn("holiday watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.Info("holiday watcher: reloaded", slog.String("path", path))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// Re-add after rename in case the inode changed.
				_ = w.Add(path)
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("holiday watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
