// Package watch reloads input files when they change on disk.
//
// Parent directories are watched rather than the files themselves, since
// most editors and exporters save by writing a temporary file and renaming
// it over the original. Bursts of events for one file are coalesced into a
// single reload.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is reported.
const DefaultDebounce = 250 * time.Millisecond

// Kind says what a watched file feeds.
type Kind int

const (
	Heightmap Kind = iota
	Water
	Albedo
	Normal
	ViewState
)

func (k Kind) String() string {
	switch k {
	case Heightmap:
		return "heightmap"
	case Water:
		return "water"
	case Albedo:
		return "albedo"
	case Normal:
		return "normal"
	case ViewState:
		return "view_state"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event reports that a watched file changed.
type Event struct {
	Kind Kind
	Path string
}

// Watcher emits an Event each time a registered file settles after a change.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger
	events   chan Event

	mu    sync.Mutex
	files map[string]Kind
	dirs  map[string]int
}

// New creates a watcher. A debounce of zero uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fs:       fs,
		debounce: debounce,
		log:      logger.Named("watch"),
		events:   make(chan Event, 16),
		files:    make(map[string]Kind),
		dirs:     make(map[string]int),
	}, nil
}

// Add registers a file. Adding the same path again replaces its kind.
func (w *Watcher) Add(path string, kind Kind) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; !ok {
		dir := filepath.Dir(abs)
		if w.dirs[dir] == 0 {
			if err := w.fs.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
		}
		w.dirs[dir]++
	}
	w.files[abs] = kind
	w.log.Debug("watching", zap.String("path", abs), zap.Stringer("kind", kind))
	return nil
}

// Remove stops reporting changes to path.
func (w *Watcher) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[abs]; !ok {
		return
	}
	delete(w.files, abs)
	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		_ = w.fs.Remove(dir)
	}
}

// Events returns the channel reloads are delivered on. It is closed when
// Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run delivers events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	pending := make(map[string]time.Time)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(ev.Name)
			if _, ok := w.kind(path); !ok {
				continue
			}
			pending[path] = time.Now()
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))

		case now := <-timer.C:
			next := time.Duration(0)
			for path, at := range pending {
				if wait := w.debounce - now.Sub(at); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, path)
				kind, ok := w.kind(path)
				if !ok {
					continue
				}
				w.log.Info("file changed", zap.String("path", path), zap.Stringer("kind", kind))
				select {
				case w.events <- Event{Kind: kind, Path: path}:
				case <-ctx.Done():
					return
				}
			}
			if next > 0 {
				timer.Reset(next)
			}
		}
	}
}

func (w *Watcher) kind(path string) (Kind, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	k, ok := w.files[path]
	return k, ok
}

// Close releases the underlying watcher, which also ends Run.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
