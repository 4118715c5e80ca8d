package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"prodview/internal/eventbus"
)

// DefaultDebounce is how long a path must stay quiet before it is reloaded
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads product files when they change on disk and publishes
// the result on the bus
type Watcher struct {
	bus      eventbus.EventBus
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	root     string
	only     string // set when root names a single file
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]time.Time
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WatcherOption configures a Watcher
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher for a catalog root, which may be a
// directory or a single product file
func NewWatcher(bus eventbus.EventBus, root string, logger *zap.Logger, opts ...WatcherOption) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		bus:      bus,
		logger:   logger.Named("watcher"),
		watcher:  fw,
		root:     root,
		debounce: DefaultDebounce,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start registers the watched directories and begins processing events.
// It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	info, err := os.Stat(w.root)
	if err != nil {
		w.markStopped()
		return fmt.Errorf("stat catalog root: %w", err)
	}

	if info.IsDir() {
		err = w.addTree(w.root)
	} else {
		w.only = w.root
		err = w.watcher.Add(filepath.Dir(w.root))
	}
	if err != nil {
		w.markStopped()
		return fmt.Errorf("watch %s: %w", w.root, err)
	}

	w.logger.Info("watching catalog", zap.String("root", w.root), zap.Duration("debounce", w.debounce))
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing fsnotify watcher", zap.Error(err))
	}
}

func (w *Watcher) markStopped() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
}

// addTree watches dir and its subdirectories using the same rules as Scan
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if path != w.root {
			name := entry.Name()
			if strings.HasPrefix(name, ".") || skipDirs[name] || dirDepth(w.root, path) > MaxScanDepth {
				return fs.SkipDir
			}
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.logger.Debug("watching directory", zap.String("path", path))
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("fsnotify error", zap.Error(err))
		case <-ticker.C:
			w.processSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	if w.only != "" {
		if filepath.Clean(event.Name) != filepath.Clean(w.only) {
			return
		}
	} else if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
			return
		}
	}

	if !IsProductFile(event.Name) {
		return
	}

	w.logger.Debug("file event", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// processSettled reloads paths whose last event is older than the debounce window
func (w *Watcher) processSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		w.reload(path)
	}
}

func (w *Watcher) reload(path string) {
	product, err := LoadFileUnder(w.root, path)
	switch {
	case err == nil:
		w.logger.Info("product reloaded", zap.String("path", path), zap.String("id", product.ID))
		w.bus.Publish(eventbus.ProductUpdatedEvent{Product: product})
	case errors.Is(err, os.ErrNotExist):
		w.logger.Info("product file removed", zap.String("path", path))
		w.bus.Publish(eventbus.ProductRemovedEvent{Source: path})
	default:
		w.logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
		w.bus.Publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to reload %s", filepath.Base(path)),
			Err:     err,
		})
	}
}
