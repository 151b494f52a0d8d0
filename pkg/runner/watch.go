package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ethpandaops/runbook-lint/pkg/report"
)

// watchDebounce coalesces bursts of filesystem events into one re-run.
const watchDebounce = 500 * time.Millisecond

// Watch runs the batch once, then re-runs it whenever a watched file
// changes, invoking onReport with each report. It blocks until the
// context is cancelled.
func (r *Runner) Watch(ctx context.Context, paths []string, onReport func(report.Report)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	defer func() { _ = watcher.Close() }()

	for _, dir := range collectWatchDirs(paths) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	run := func() {
		rep, err := r.Run(ctx, paths)
		if err != nil {
			r.log.WithError(err).Error("Watch run failed")

			return
		}

		onReport(rep)
	}

	run()

	var debounce *time.Timer

	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !relevantEvent(event) {
				continue
			}

			// Reset the debounce window on every event so a burst of
			// writes produces a single re-run.
			if debounce != nil {
				debounce.Stop()
			}

			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case <-rerun:
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			r.log.WithError(err).Warn("Watcher error")
		}
	}
}

// relevantEvent filters for events that can change validation results.
func relevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// collectWatchDirs maps the given paths to the set of directories to
// watch: a file contributes its parent, a directory itself. Unreadable
// paths are skipped; Run reports them as io errors.
func collectWatchDirs(paths []string) []string {
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		dir := path
		if !info.IsDir() {
			dir = filepath.Dir(path)
		}

		seen[dir] = struct{}{}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}

	sort.Strings(dirs)

	return dirs
}
