package document

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reports changes to open files. Parent directories are watched
// rather than the files themselves so that editors which save by renaming
// a temp file over the original are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	log      zerolog.Logger
	onChange func(path string)

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]int
}

// NewWatcher creates a watcher calling onChange from the watcher goroutine
// for every event on a tracked file. Callers post the change back to their
// event loop.
func NewWatcher(log zerolog.Logger, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fs:       fw,
		log:      log,
		onChange: onChange,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
	}, nil
}

// Add starts tracking path.
func (w *Watcher) Add(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; ok {
		return nil
	}

	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[path] = struct{}{}
	return nil
}

// Remove stops tracking path.
func (w *Watcher) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; !ok {
		return
	}
	delete(w.files, path)

	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		if err := w.fs.Remove(dir); err != nil {
			w.log.Debug().Err(err).Str("dir", dir).Msg("unwatch failed")
		}
	}
}

// Tracked reports whether path is being watched.
func (w *Watcher) Tracked(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path]
	return ok
}

// Run delivers events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fs.Close() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			if w.Tracked(ev.Name) {
				w.log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("file changed")
				w.onChange(ev.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}
