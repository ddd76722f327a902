package core

import (
	"context"
	"fmt"
	"sync"
)

// EventType represents the kind of change a store went through.
type EventType string

const (
	EventAdd      EventType = "ADD"
	EventRemove   EventType = "REMOVE"
	EventUpdate   EventType = "UPDATE"
	EventLoad     EventType = "LOAD"
	EventPersist  EventType = "PERSIST"
	EventCategory EventType = "CATEGORY"
	EventClient   EventType = "CLIENT"
	EventSelect   EventType = "SELECT"
	EventModify   EventType = "MODIFY"
)

// Event represents a change in a store or in its backing storage.
// ID is the note id (or snack id) the change is about, zero when it concerns
// the whole collection.
type Event struct {
	Type      EventType
	ID        uint64
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	if e.ID == 0 {
		return string(e.Type)
	}
	return fmt.Sprintf("%s %d", e.Type, e.ID)
}

// DefaultEventBuffer is the per-subscriber buffer used when none is given.
const DefaultEventBuffer = 100

// Broker fans events out to subscribers without ever blocking the publisher.
// A subscriber that falls behind by more than its buffer misses events.
type Broker[E any] struct {
	mu      sync.Mutex
	subs    map[chan E]struct{}
	buffer  int
	done    chan struct{}
	closed  bool
	dropped uint64
}

// NewBroker creates a broker whose subscriptions buffer up to size events.
// Zero or negative means DefaultEventBuffer.
func NewBroker[E any](size int) *Broker[E] {
	if size <= 0 {
		size = DefaultEventBuffer
	}
	return &Broker[E]{
		subs:   make(map[chan E]struct{}),
		buffer: size,
		done:   make(chan struct{}),
	}
}

// Subscribe returns a channel receiving every event published from now on.
// The channel is closed when ctx is done or the broker is closed.
func (b *Broker[E]) Subscribe(ctx context.Context) <-chan E {
	ch := make(chan E, b.buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(ch)
		case <-b.done:
		}
	}()

	return ch
}

func (b *Broker[E]) unsubscribe(ch chan E) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Publish delivers e to every subscriber with room in its buffer.
func (b *Broker[E]) Publish(e E) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped++
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broker[E]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (b *Broker[E]) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close closes every subscription. Publishing after Close is a no-op.
func (b *Broker[E]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for ch := range b.subs {
		close(ch)
	}
	b.subs = make(map[chan E]struct{})
}
