package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/imran-moonward/mynote/pkg/core"
)

// debounceWindow coalesces the burst of events an atomic rename produces.
const debounceWindow = 50 * time.Millisecond

// debouncer delays fn until no new trigger arrived for the window.
type debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.window, func() {
		defer d.wg.Done()
		fn()
	})
}

// stop prevents new triggers and waits for a pending one to finish.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Watch reports changes to key made by someone other than this Storage
// (another process, a text editor, a sync tool). Own writes are suppressed.
// The channel is closed when ctx is done.
func (s *Storage) Watch(ctx context.Context, key string) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// The directory, not the file: atomic writes replace the inode.
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	w := &watchWorker{
		storage:   s,
		key:       key,
		target:    filepath.Clean(s.FileFor(key)),
		watcher:   watcher,
		debouncer: newDebouncer(debounceWindow),
		events:    make(chan core.Event, core.DefaultEventBuffer),
	}

	s.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		s.handleWatchError(fmt.Errorf("watcher panic: %w", err))
	}))

	return w.events, nil
}

type watchWorker struct {
	storage   *Storage
	key       string
	target    string
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	events    chan core.Event
}

func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.storage.setWatcherActive(false)
	defer w.debouncer.stop()
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if isTempFile(event.Name) || filepath.Clean(event.Name) != w.target {
				continue
			}
			w.storage.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			w.debouncer.trigger(func() { w.emit(ctx) })

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.storage.handleWatchError(err)
		}
	}
}

// emit re-reads the blob and forwards a MODIFY event unless the content is
// what this process wrote itself.
func (w *watchWorker) emit(ctx context.Context) {
	value, found, err := w.storage.Get(context.WithoutCancel(ctx), w.key)
	if err != nil {
		w.storage.handleWatchError(err)
		return
	}
	if found && w.storage.wroteLast(w.key, value) {
		return
	}

	e := core.Event{Type: core.EventModify, Timestamp: time.Now().Unix()}
	select {
	case w.events <- e:
	case <-ctx.Done():
	default:
		w.storage.config.Logger.Warn("watch event dropped, consumer too slow", "key", w.key)
	}
}

func (s *Storage) handleWatchError(err error) {
	s.config.Logger.Error("fsnotify error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}
