package snackbar

import "github.com/aretw0/introspection"

// SnackbarState exposes internal state for observability.
type SnackbarState struct {
	Queued    int    `json:"queued"`
	Timers    int    `json:"timers"`
	LastID    uint64 `json:"last_id"`
	TimeoutMS int64  `json:"timeout_ms"`
	Closed    bool   `json:"closed"`
}

// State implements introspection.Introspectable.
func (st *Store) State() any {
	st.mu.Lock()
	defer st.mu.Unlock()
	return SnackbarState{
		Queued:    len(st.snacks),
		Timers:    len(st.timers),
		LastID:    st.nextID,
		TimeoutMS: st.timeout.Milliseconds(),
		Closed:    st.closed,
	}
}

// ComponentType implements introspection.Component.
func (st *Store) ComponentType() string {
	return "snackbar"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
