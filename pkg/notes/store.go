// Package notes implements the note store: the in-memory collection of
// notes, categories and clients, the currently selected note, and its
// synchronization with a key-value storage backend.
package notes

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/imran-moonward/mynote/pkg/adapters/memory"
	"github.com/imran-moonward/mynote/pkg/codec"
	"github.com/imran-moonward/mynote/pkg/core"
)

// Store holds the note collection. All methods are safe for concurrent use;
// mutations are applied in call order and readers always get copies.
type Store struct {
	mu         sync.RWMutex
	notes      []core.Note
	categories []core.CategoryType
	clients    []core.Client
	selected   *core.Note

	storage core.Storage
	codec   codec.Codec
	key     string
	logger  *slog.Logger
	onError func(error)
	events  *core.Broker[core.Event]

	// persistence bookkeeping
	writeMu  sync.Mutex
	written  uint64 // seq of the newest snapshot in storage, guarded by writeMu
	seq      atomic.Uint64
	inflight sync.WaitGroup
	loads    atomic.Uint64
	persists atomic.Uint64
	failures atomic.Uint64
}

// New creates a store seeded with the built-in categories and clients and no
// notes.
func New(opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.storage == nil {
		o.storage = memory.New()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return &Store{
		notes:      []core.Note{},
		categories: o.categories,
		clients:    o.clients,
		storage:    o.storage,
		codec:      o.codec,
		key:        o.key,
		logger:     o.logger,
		onError:    o.onError,
		events:     core.NewBroker[core.Event](o.eventBuffer),
	}
}

func (s *Store) publish(t core.EventType, id int) {
	s.events.Publish(core.Event{Type: t, ID: uint64(id), Timestamp: time.Now().Unix()})
}

func (s *Store) indexOf(id int) int {
	return slices.IndexFunc(s.notes, func(n core.Note) bool { return n.ID == id })
}

// --- Notes ---

// AddOrRemoveNote toggles n by ID: a note with the same ID is removed,
// otherwise n is appended. It reports whether n was added.
//
// Passing an ID that is already present deletes that note instead of failing.
// Prefer AddNote and RemoveNoteByID, which cannot be confused.
func (s *Store) AddOrRemoveNote(n core.Note) bool {
	s.mu.Lock()
	if i := s.indexOf(n.ID); i >= 0 {
		s.notes = slices.Delete(s.notes, i, i+1)
		s.mu.Unlock()
		s.publish(core.EventRemove, n.ID)
		return false
	}
	s.notes = append(s.notes, n)
	s.mu.Unlock()
	s.publish(core.EventAdd, n.ID)
	return true
}

// AddNote appends n. It fails with core.ErrDuplicateID if a note with the
// same ID exists; the collection is left unchanged in that case.
func (s *Store) AddNote(n core.Note) error {
	s.mu.Lock()
	if s.indexOf(n.ID) >= 0 {
		s.mu.Unlock()
		return core.ErrDuplicateID
	}
	s.notes = append(s.notes, n)
	s.mu.Unlock()

	s.publish(core.EventAdd, n.ID)
	return nil
}

// RemoveNoteByID removes the note with the given ID and reports whether one
// was present. Removing a missing ID is a no-op.
func (s *Store) RemoveNoteByID(id int) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	s.mu.Unlock()

	s.publish(core.EventRemove, id)
	return true
}

// UpdateNote merges n into the note with the same ID, in place. Zero fields
// of n keep the existing values (see core.Note.Merge). It reports whether a
// note was updated; a missing ID inserts nothing.
func (s *Store) UpdateNote(n core.Note) bool {
	s.mu.Lock()
	i := s.indexOf(n.ID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.notes[i] = s.notes[i].Merge(n)
	s.mu.Unlock()

	s.publish(core.EventUpdate, n.ID)
	return true
}

// Notes returns the notes in insertion order.
func (s *Store) Notes() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Note returns the note with the given ID.
func (s *Store) Note(id int) (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.notes[i], true
	}
	return core.Note{}, false
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// NextID returns an ID not used by any note: one past the highest.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	next := 1
	for _, n := range s.notes {
		if n.ID >= next {
			next = n.ID + 1
		}
	}
	return next
}

// --- Categories ---

// Categories returns the known categories.
func (s *Store) Categories() []core.CategoryType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// AddCategory appends c. Duplicates are allowed.
func (s *Store) AddCategory(c core.CategoryType) {
	s.mu.Lock()
	s.categories = append(s.categories, c)
	s.mu.Unlock()
	s.publish(core.EventCategory, 0)
}

// RemoveCategory removes every entry equal to c.
func (s *Store) RemoveCategory(c core.CategoryType) {
	s.mu.Lock()
	s.categories = slices.DeleteFunc(s.categories, func(x core.CategoryType) bool { return x == c })
	s.mu.Unlock()
	s.publish(core.EventCategory, 0)
}

// --- Clients ---

// Clients returns the known clients.
func (s *Store) Clients() []core.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.clients)
}

// ClientByName returns the first client with the given name.
func (s *Store) ClientByName(name string) (core.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.Name == name {
			return c, true
		}
	}
	return core.Client{}, false
}

// AddClient appends c.
func (s *Store) AddClient(c core.Client) {
	s.mu.Lock()
	s.clients = append(s.clients, c)
	s.mu.Unlock()
	s.publish(core.EventClient, c.ID)
}

// RemoveClient removes every client whose ID equals c.ID.
func (s *Store) RemoveClient(c core.Client) {
	s.mu.Lock()
	s.clients = slices.DeleteFunc(s.clients, func(x core.Client) bool { return x.ID == c.ID })
	s.mu.Unlock()
	s.publish(core.EventClient, c.ID)
}

// --- Selection ---

// SetSelectedNote marks n as the note being edited. Nil clears the selection.
// The store keeps its own copy.
func (s *Store) SetSelectedNote(n *core.Note) {
	s.mu.Lock()
	if n == nil {
		s.selected = nil
	} else {
		c := *n
		s.selected = &c
	}
	s.mu.Unlock()

	id := 0
	if n != nil {
		id = n.ID
	}
	s.publish(core.EventSelect, id)
}

// SelectedNote returns the note being edited, if any.
func (s *Store) SelectedNote() (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return core.Note{}, false
	}
	return *s.selected, true
}

// Snapshot returns a copy of the persistable state. The selected note is
// never part of it.
func (s *Store) Snapshot() core.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() core.Record {
	return core.Record{
		Notes:      slices.Clone(s.notes),
		Categories: slices.Clone(s.categories),
		ClientList: slices.Clone(s.clients),
	}
}

// Watch returns a stream of change events. It is closed when ctx is done or
// the store is closed.
func (s *Store) Watch(ctx context.Context) <-chan core.Event {
	return s.events.Subscribe(ctx)
}

// Storage returns the backend the store loads from and persists to.
func (s *Store) Storage() core.Storage {
	return s.storage
}

// Close ends all Watch subscriptions. It does not wait for pending writes;
// use Flush for that.
func (s *Store) Close() {
	s.events.Close()
}
