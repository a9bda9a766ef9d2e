package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// InputWatcher invalidates a DatasetCache when one of its workbooks is
// written, created, renamed or removed.
type InputWatcher struct {
	cache   *DatasetCache
	watcher *fsnotify.Watcher
	files   map[string]bool
	settle  time.Duration
	logger  *slog.Logger
}

// NewInputWatcher watches the directories holding the cache's workbooks.
// Directories are watched rather than files so editors that replace the
// file on save are still seen.
func NewInputWatcher(cache *DatasetCache, settle time.Duration, logger *slog.Logger) (*InputWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	files := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, src := range cache.Sources().Sources {
		abs, err := filepath.Abs(src.Path)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("resolve %s: %w", src.Path, err)
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return &InputWatcher{
		cache:   cache,
		watcher: watcher,
		files:   files,
		settle:  settle,
		logger:  logger.With(slog.String("component", "input_watcher")),
	}, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
// Bursts of events within the settle delay cause a single invalidation.
func (w *InputWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.logger.InfoContext(ctx, "watching input workbooks", slog.Int("files", len(w.files)))

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "input changed",
				slog.String("file", event.Name),
				slog.String("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				timer.Reset(w.settle)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			w.cache.Invalidate()
			w.logger.InfoContext(ctx, "dataset invalidated")

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WarnContext(ctx, "file watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *InputWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}
