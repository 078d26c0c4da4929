package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/journal/pkg/core"
)

type watchWorker struct {
	repo    *Repository
	target  string
	events  chan<- core.Event
	watcher *fsnotify.Watcher
}

func newWatchWorker(repo *Repository, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		repo:   repo,
		target: filepath.Base(repo.CollectionFile()),
		events: events,
	}
}

// Start registers the directory with fsnotify and runs the event loop in a
// tracked goroutine. The events channel is closed when ctx is done.
func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// The directory is watched rather than the file: atomic writes replace the
	// file, which would drop a file-level watch.
	if err := watcher.Add(w.repo.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.repo.Path, err)
	}

	w.watcher = watcher
	w.repo.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if w.repo.config.ErrorHandler != nil {
			w.repo.config.ErrorHandler(fmt.Errorf("watcher: %w", err))
		} else {
			w.repo.config.Logger.Error("watcher stopped", "error", err)
		}
	}))
	return nil
}

// run is the main event loop. Changes to the collection file are coalesced
// until the debounce window passes without further writes.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if w.repo.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.repo.config.Logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				w.repo.config.Logger.Error("watcher panic", "error", err)
			}
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	settle := time.NewTimer(time.Hour)
	settle.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			settle.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.repo.config.Logger.Debug("collection file changed", "op", event.Op.String())
			pending = true
			settle.Reset(w.repo.config.Debounce)

		case <-settle.C:
			if !pending {
				continue
			}
			pending = false
			w.repo.recordChange()
			select {
			case w.events <- core.Event{Type: core.EventReload, ID: core.CollectionKey, Timestamp: time.Now().UnixMilli()}:
			case <-ctx.Done():
				return nil
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.config.Logger.Error("fsnotify error", "error", wErr)
			if w.repo.config.ErrorHandler != nil {
				w.repo.config.ErrorHandler(wErr)
			}
		}
	}
}

// relevant keeps writes, creates and renames that land on the collection file.
// Temp files of atomic writes and the theme file are ignored.
func (w *watchWorker) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
