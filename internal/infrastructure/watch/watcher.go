// Package watch monitors the config file so a running shell can apply edits
// to config.yaml without a restart.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a reload
// event is emitted. Editors write a file several times in quick succession;
// the debounce collapses such bursts into one event.
const DefaultDebounce = 100 * time.Millisecond

// Event signals that the watched config file changed and should be reloaded.
type Event struct {
	Path string
	At   time.Time
}

// Watcher monitors a single config file for changes. It watches the file's
// directory rather than the file itself, which survives the rename-and-
// replace pattern editors use when saving.
type Watcher struct {
	path      string
	debounce  time.Duration
	fsWatcher *fsnotify.Watcher
	events    chan Event
	errors    chan error

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the config file at path.
// A debounce of zero or less uses DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:      abs,
		debounce:  debounce,
		fsWatcher: fsWatcher,
		events:    make(chan Event, 1),
		errors:    make(chan error, 1),
	}, nil
}

// Path returns the absolute path of the watched config file.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching. The config file itself does not have to exist yet;
// its directory does.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("config directory not watchable: %w", err)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.run(ctx)
	return nil
}

// Events returns the channel on which reload events are delivered.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel for watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and releases resources. Safe to call twice.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.fsWatcher.Close()
	w.wg.Wait()

	w.mu.Lock()
	close(w.events)
	close(w.errors)
	w.mu.Unlock()

	return err
}

// run filters directory events down to the watched file and schedules
// debounced reload events.
func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// A remove or rename-away has no content to reload; the
			// replacement file arrives as a Create.
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.scheduleEmit()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Drop error if channel is full
			}
		}
	}
}

// scheduleEmit arms (or re-arms) the debounce timer.
func (w *Watcher) scheduleEmit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.emit)
		return
	}
	w.timer.Reset(w.debounce)
}

// emit delivers one reload event once the file has been quiet long enough.
func (w *Watcher) emit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.events <- Event{Path: w.path, At: time.Now()}:
	default:
		// A reload is already pending; the consumer will read fresh state
	}
}
