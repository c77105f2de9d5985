// Package watch reports changes under the asset root so caches derived from
// asset files can be dropped.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/cryals/art-archive/internal/archive"
	"github.com/cryals/art-archive/internal/platform/timeouts"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeFunc receives the root-relative paths that settled after a burst of
// filesystem events. Paths are sorted.
type ChangeFunc func(ctx context.Context, paths []string)

// Watcher follows the asset root and its folders.
type Watcher struct {
	store    *archive.Store
	onChange ChangeFunc
	logger   *zap.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	ready   chan struct{}

	rootWatched bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for watch failures.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets how long a path must stay quiet before it is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New builds a watcher over store's root.
func New(store *archive.Store, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	if store == nil {
		return nil, errors.New("archive store is required")
	}
	if onChange == nil {
		return nil, errors.New("change callback is required")
	}
	w := &Watcher{
		store:    store,
		onChange: onChange,
		logger:   zap.NewNop(),
		debounce: timeouts.WatchDebounce,
		pending:  map[string]time.Time{},
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Ready is closed once the initial watches are registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx ends. A missing root is logged and retried on every
// tick until it appears; its folders are then reported as changed.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer fsw.Close()

	root := w.store.Root()
	if _, err := w.addTree(fsw, root); err != nil {
		w.logger.Warn("asset root not watched", zap.String("root", root), zap.Error(err))
	} else {
		w.rootWatched = true
	}
	close(w.ready)

	tick := max(w.debounce/4, 5*time.Millisecond)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("fs watcher error", zap.Error(err))
		case <-ticker.C:
			if !w.rootWatched {
				w.retryRoot(fsw, root)
			}
			w.flush(ctx)
		}
	}
}

// addTree watches root and its immediate folders, the only depth the
// archive reads. It returns the names of the entries found under root.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) ([]string, error) {
	if err := fsw.Add(root); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		_ = fsw.Remove(root)
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if err := fsw.Add(dir); err != nil {
			w.logger.Warn("folder not watched", zap.String("folder", dir), zap.Error(err))
		}
	}
	return names, nil
}

func (w *Watcher) retryRoot(fsw *fsnotify.Watcher, root string) {
	names, err := w.addTree(fsw, root)
	if err != nil {
		return
	}
	w.rootWatched = true
	w.logger.Info("asset root watched", zap.String("root", root))

	now := time.Now()
	w.mu.Lock()
	for _, name := range names {
		w.pending[name] = now
	}
	w.mu.Unlock()
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}
	if filepath.Clean(event.Name) == filepath.Clean(w.store.Root()) {
		if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
			w.rootWatched = false
		}
		return
	}
	rel, ok := w.store.RelPath(event.Name)
	if !ok {
		return
	}
	if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == w.store.Root() {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := fsw.Add(event.Name); err != nil {
				w.logger.Warn("folder not watched", zap.String("folder", event.Name), zap.Error(err))
			}
		}
	}

	w.mu.Lock()
	w.pending[rel] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	w.mu.Lock()
	var settled []string
	for path, seen := range w.pending {
		if now.Sub(seen) >= w.debounce {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	if len(settled) == 0 {
		return
	}
	slices.Sort(settled)
	w.logger.Debug("asset changes settled", zap.Strings("paths", settled))
	w.onChange(ctx, settled)
}
