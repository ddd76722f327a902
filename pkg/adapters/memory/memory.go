// Package memory provides an in-process core.Storage, used by default in
// tests and by the "memory" adapter.
package memory

import (
	"context"
	"sync"

	"github.com/imran-moonward/mynote/pkg/core"
)

// Storage keeps values in a map.
type Storage struct {
	mu        sync.RWMutex
	values    map[string]string
	readErr   error
	writeErr  error
	readOnly  bool
	writes    int
	writeHook func(key, value string)
}

// New returns an empty storage.
func New() *Storage {
	return &Storage{values: make(map[string]string)}
}

// NewReadOnly returns a storage that rejects writes with core.ErrReadOnly.
func NewReadOnly(seed map[string]string) *Storage {
	s := New()
	for k, v := range seed {
		s.values[k] = v
	}
	s.readOnly = true
	return s
}

func (s *Storage) Initialize(ctx context.Context) error { return nil }

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.readErr != nil {
		return "", false, s.readErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	if s.readOnly {
		s.mu.Unlock()
		return core.ErrReadOnly
	}
	if s.writeErr != nil {
		err := s.writeErr
		s.mu.Unlock()
		return err
	}
	s.values[key] = value
	s.writes++
	hook := s.writeHook
	s.mu.Unlock()

	if hook != nil {
		hook(key, value)
	}
	return nil
}

// Put stores a raw value, bypassing failure injection. Handy for seeding
// corrupt payloads in tests.
func (s *Storage) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Value returns the raw stored value.
func (s *Storage) Value(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Writes returns how many successful Set calls happened.
func (s *Storage) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// FailReads makes every Get return err. nil restores normal behaviour.
func (s *Storage) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailWrites makes every Set return err. nil restores normal behaviour.
func (s *Storage) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// OnWrite registers fn to run after each successful Set.
func (s *Storage) OnWrite(fn func(key, value string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeHook = fn
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory-storage"
}

var _ core.Storage = (*Storage)(nil)
