package dataset

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ziadkadry99/forcetree/internal/tree"
)

// DefaultDebounce coalesces bursts of writes from editors and atomic renames.
const DefaultDebounce = 200 * time.Millisecond

var (
	ErrFileRemoved    = errors.New("watched dataset was removed")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithOnReload sets the callback invoked with each successfully reloaded tree.
func WithOnReload(fn func(*tree.Node)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithOnError sets the callback invoked on watch or load errors. A dataset
// that fails to decode is reported here and the previous tree stays live.
func WithOnError(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher reloads a dataset file whenever it changes on disk.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(*tree.Node)
	onError  func(error)

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	timer   *time.Timer
	cancel  context.CancelFunc
	started bool
	done    chan struct{}
}

// NewWatcher creates a watcher for path. It does nothing until Start.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		onReload: func(*tree.Node) {},
		onError:  func(err error) { log.Printf("dataset: %v", err) },
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The parent directory is watched so that atomic
// replace-by-rename is seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.fsw = fsw
	w.done = make(chan struct{})
	w.started = true
	go w.loop(ctx, fsw, w.done)
	return nil
}

// Stop halts the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.fsw.Close()
	if w.timer != nil {
		w.timer.Stop()
	}
	done := w.done
	w.started = false
	w.mu.Unlock()

	<-done
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, done chan struct{}) {
	defer close(done)
	target := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Has(fsnotify.Remove):
				w.onError(ErrFileRemoved)
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.trigger()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	started := w.started
	w.mu.Unlock()
	if !started {
		return
	}

	root, err := Load(w.path)
	if err != nil {
		w.onError(err)
		return
	}
	w.onReload(root)
}
