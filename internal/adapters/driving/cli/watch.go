package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events into one rescan.
// Editors typically emit several events per save.
const watchDebounce = 500 * time.Millisecond

// watchAndRun re-runs fn whenever files under root change, until the
// command context is cancelled. Watches are per-directory and newly
// created directories are added as events for them arrive.
func watchAndRun(cmd *cobra.Command, root string, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchTree(watcher, root); err != nil {
		return err
	}

	cmd.Printf("Watching %s for changes. Press Ctrl-C to stop.\n", root)

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				// New directories need their own watches.
				if err := addWatchTree(watcher, event.Name); err != nil {
					logger.Debug("watch %s: %v", event.Name, err)
				}
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case <-pending:
			pending = nil
			if err := fn(); err != nil {
				logger.Error("rescan failed: %v", err)
			}
		}
	}
}

// addWatchTree watches path and every directory below it. Non-directory
// paths are ignored.
func addWatchTree(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
