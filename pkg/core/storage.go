package core

import "context"

// StorageKey is the single key the note store reads and writes.
const StorageKey = "mynote/state"

// Storage is the key-value backend the note store persists into.
// Implementations only move opaque strings around; encoding is the caller's
// concern.
type Storage interface {
	// Get returns the value stored under key. found is false when nothing
	// has been stored yet; that is not an error.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Initialize prepares the backend (directories, schema).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by backends that can report changes to a key made
// by other processes.
type Watchable interface {
	Watch(ctx context.Context, key string) (<-chan Event, error)
}
