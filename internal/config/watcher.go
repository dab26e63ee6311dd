package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of filesystem events editors
// emit for a single save.
const DefaultDebounce = 250 * time.Millisecond

// Handler is called with the path of a changed configuration file.
type Handler func(path string)

// Watcher reloads configuration on file changes. Watching the parent
// directory instead of the file itself survives the rename-over-save
// pattern most editors use.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	handler  Handler

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// Watch starts watching path and calls handler after changes settle.
// Close releases the watcher; cancelling ctx does too.
func Watch(ctx context.Context, path string, handler Handler, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: DefaultDebounce,
		handler:  handler,
		cancel:   cancel,
	}
	for _, o := range opts {
		o(w)
	}

	w.wg.Add(1)
	go w.run(ctx)
	return w, nil
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.cancel()
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.handler(w.path)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next event still fires.
		}
	}
}
