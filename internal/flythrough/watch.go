package flythrough

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/terrain-flyover/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last change before
// signalling, so an editor's write-rename-chmod burst is reported once.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to a tour file.
type Watcher struct {
	Debounce time.Duration
}

// NewWatcher creates a watcher with the default debounce.
func NewWatcher() *Watcher {
	return &Watcher{Debounce: DefaultDebounce}
}

// Watch signals on the returned channel whenever path is written, created or
// renamed into place. The parent directory is watched so that editors which
// replace the file atomically are seen. The channel holds at most one pending
// signal and is closed when ctx is done.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan struct{}, 1)
	go w.loop(ctx, fw, abs, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, path string, out chan<- struct{}) {
	defer close(out)
	defer fw.Close()

	log := logger.Named("flythrough")
	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Debug("tour file changed", zap.String("path", path), zap.Stringer("op", event.Op))
				timer.Reset(w.Debounce)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			log.Warn("tour watcher error", zap.Error(err))

		case <-timer.C:
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}
