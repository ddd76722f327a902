// Package snackbar implements the queue of transient user notifications.
// Every snack expires on its own timer; it can also be dismissed early.
package snackbar

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/imran-moonward/mynote/pkg/core"
)

// DefaultTimeout is how long a snack stays in the queue.
const DefaultTimeout = 2000 * time.Millisecond

// Store is an ordered queue of snacks, oldest first.
type Store struct {
	mu      sync.Mutex
	snacks  []core.Snack
	timers  map[uint64]*time.Timer
	nextID  uint64
	closed  bool
	timeout time.Duration
	logger  *slog.Logger
	events  *core.Broker[core.Event]
}

// New creates an empty queue.
func New(opts ...Option) *Store {
	o := &options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		snacks:  []core.Snack{},
		timers:  make(map[uint64]*time.Timer),
		timeout: o.timeout,
		logger:  o.logger,
		events:  core.NewBroker[core.Event](o.eventBuffer),
	}
}

// Add enqueues s under a fresh ID (any ID already set on s is ignored) and
// schedules its removal after the store timeout. The enqueued snack is
// returned so the caller can dismiss it early.
func (st *Store) Add(s core.Snack) core.Snack {
	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		st.logger.Debug("snack dropped, store closed", "message", s.Message)
		return s
	}
	st.nextID++
	s.ID = st.nextID
	st.snacks = append(st.snacks, s)

	id := s.ID
	st.timers[id] = time.AfterFunc(st.timeout, func() {
		if st.expire(id) {
			st.logger.Debug("snack expired", "id", id)
		}
	})
	st.mu.Unlock()

	st.logger.Debug("snack added", "id", s.ID, "severity", string(s.Severity), "message", s.Message)
	st.events.Publish(core.Event{Type: core.EventAdd, ID: s.ID, Timestamp: time.Now().Unix()})
	return s
}

// Push is shorthand for Add with a message and severity.
func (st *Store) Push(message string, severity core.Severity) core.Snack {
	return st.Add(core.Snack{Message: message, Severity: severity})
}

// Remove dismisses the snack with the given ID and cancels its timer.
// It reports whether the snack was still queued; removing twice is a no-op.
func (st *Store) Remove(id uint64) bool {
	st.mu.Lock()
	if t, ok := st.timers[id]; ok {
		t.Stop()
	}
	removed := st.removeLocked(id)
	st.mu.Unlock()

	if removed {
		st.events.Publish(core.Event{Type: core.EventRemove, ID: id, Timestamp: time.Now().Unix()})
	}
	return removed
}

// RemoveSnack dismisses s, matched by ID only. Two snacks with the same text
// are distinct entries.
func (st *Store) RemoveSnack(s core.Snack) bool {
	return st.Remove(s.ID)
}

func (st *Store) expire(id uint64) bool {
	st.mu.Lock()
	removed := st.removeLocked(id)
	st.mu.Unlock()

	if removed {
		st.events.Publish(core.Event{Type: core.EventRemove, ID: id, Timestamp: time.Now().Unix()})
	}
	return removed
}

func (st *Store) removeLocked(id uint64) bool {
	delete(st.timers, id)
	i := slices.IndexFunc(st.snacks, func(s core.Snack) bool { return s.ID == id })
	if i < 0 {
		return false
	}
	st.snacks = slices.Delete(st.snacks, i, i+1)
	return true
}

// Snacks returns the queued snacks, oldest first.
func (st *Store) Snacks() []core.Snack {
	st.mu.Lock()
	defer st.mu.Unlock()
	return slices.Clone(st.snacks)
}

// Len returns the number of queued snacks.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.snacks)
}

// Timeout returns how long each snack lives.
func (st *Store) Timeout() time.Duration {
	return st.timeout
}

// Watch streams ADD and REMOVE events keyed by snack ID.
func (st *Store) Watch(ctx context.Context) <-chan core.Event {
	return st.events.Subscribe(ctx)
}

// Close stops every pending timer, empties the queue and ends Watch
// subscriptions. Later Adds are ignored.
func (st *Store) Close() {
	st.mu.Lock()
	for _, t := range st.timers {
		t.Stop()
	}
	st.timers = make(map[uint64]*time.Timer)
	st.snacks = []core.Snack{}
	st.closed = true
	st.mu.Unlock()

	st.events.Close()
}
