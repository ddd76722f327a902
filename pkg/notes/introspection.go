package notes

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Notes       int    `json:"notes"`
	Categories  int    `json:"categories"`
	Clients     int    `json:"clients"`
	SelectedID  *int   `json:"selected_id,omitempty"`
	Key         string `json:"key"`
	Codec       string `json:"codec"`
	StorageType string `json:"storage_type"`
	Loads       uint64 `json:"loads"`
	Persists    uint64 `json:"persists"`
	Failures    uint64 `json:"failures"`
	Subscribers int    `json:"subscribers"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	storageType := "storage"
	if comp, ok := s.storage.(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	var selected *int
	if s.selected != nil {
		id := s.selected.ID
		selected = &id
	}

	return StoreState{
		Notes:       len(s.notes),
		Categories:  len(s.categories),
		Clients:     len(s.clients),
		SelectedID:  selected,
		Key:         s.key,
		Codec:       s.codec.Name(),
		StorageType: storageType,
		Loads:       s.loads.Load(),
		Persists:    s.persists.Load(),
		Failures:    s.failures.Load(),
		Subscribers: s.events.Subscribers(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "note-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
