package i18n

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the bundle whenever a yaml file in the override
// directory changes. Events are debounced so editors that write in
// bursts trigger a single reload. Blocks until ctx is cancelled.
func (b *Bundle) Watch(ctx context.Context, dir string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			ext := filepath.Ext(event.Name)
			if ext != ".yaml" && ext != ".yml" {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				logger.Debug("locale file changed, reloading", "file", event.Name)
				if err := b.Reload(); err != nil {
					logger.Error("locale reload failed", "error", err)
				}
			})

		case err := <-watcher.Errors:
			logger.Error("locale watcher error", "error", err)
		}
	}
}
