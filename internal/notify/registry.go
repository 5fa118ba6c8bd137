package notify

import (
	"sync"

	"waterdelivery/internal/core/domain/model/kernel"
)

// Registry is the concurrency-safe mapping from party identifier to active
// push session. It is the only structure in the process mutated from many
// connection contexts at once, so every operation holds the lock for a
// bounded critical section only.
//
// Registration is last-writer-wins: a reconnect (or a second device)
// supersedes the previous session for notification targeting.
type Registry struct {
	mu       sync.RWMutex
	sessions map[kernel.UUID]Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[kernel.UUID]Session),
	}
}

// Register binds a session to a party identifier, replacing any prior
// session for the same party.
func (r *Registry) Register(partyID kernel.UUID, session Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[partyID] = session
}

// Lookup returns the active session for a party, if any.
func (r *Registry) Lookup(partyID kernel.UUID) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[partyID]
	return session, ok
}

// UnregisterSession removes the entry holding the given session handle.
// Disconnect events carry the session, not the party identifier, so this
// scans the map. A session that was already superseded by a reconnect is
// left alone: the newer session keeps the slot.
func (r *Registry) UnregisterSession(session Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for partyID, active := range r.sessions {
		if active == session {
			delete(r.sessions, partyID)
			return
		}
	}
}

// ConnectedIDs returns a snapshot of the currently connected party
// identifiers. The snapshot is taken under the read lock; the set may change
// immediately afterwards, which dispatch tolerates.
func (r *Registry) ConnectedIDs() []kernel.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]kernel.UUID, 0, len(r.sessions))
	for partyID := range r.sessions {
		ids = append(ids, partyID)
	}
	return ids
}

// Len returns the number of connected parties.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
