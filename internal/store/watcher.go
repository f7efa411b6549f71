package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"socialpost/internal/logging"
)

// Watcher reports changes another process makes to one key of a FileBackend.
// The directory is watched rather than the file because Set replaces the file
// by rename. Writes made through the same backend are ignored.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	backend     *FileBackend
	key         string
	path        string
	onChange    func()
	pending     time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats WatcherStats
}

// WatcherStats tracks watcher activity.
type WatcherStats struct {
	Events        int
	Changes       int
	OwnWrites     int
	Errors        int
	LastEventTime time.Time
}

// NewWatcher creates a watcher that calls onChange after key settles on disk.
func NewWatcher(backend *FileBackend, key string, onChange func()) (*Watcher, error) {
	if backend == nil {
		return nil, errors.New("watcher: file backend required")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		backend:     backend,
		key:         key,
		path:        filepath.Clean(backend.Path(key)),
		onChange:    onChange,
		debounceDur: 300 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Watch starts a watcher for key that runs until ctx is done or Stop is called.
func (f *FileBackend) Watch(ctx context.Context, key string, onChange func()) (*Watcher, error) {
	w, err := NewWatcher(f, key, onChange)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.watcher.Close()
		return nil, err
	}
	return w, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.backend.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Store("watching %s", w.path)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.StoreError("watcher: close failed: %v", err)
	}
	logging.StoreDebug("watcher stopped")
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
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
			logging.StoreError("watcher: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			w.processSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processSettled() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	data, err := os.ReadFile(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.StoreError("watcher: failed to read %s: %v", w.path, err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		}
		return
	}
	if w.backend.wroteLast(w.key, data) {
		w.mu.Lock()
		w.stats.OwnWrites++
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.stats.Changes++
	w.mu.Unlock()

	logging.Store("external change to %s detected", filepath.Base(w.path))
	if w.onChange != nil {
		w.onChange()
	}
}
