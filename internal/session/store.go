package session

import (
	"errors"
	"sync"
)

// ErrIncomplete is returned by Save when a session lacks a token or a user.
var ErrIncomplete = errors.New("session is incomplete")

// Store persists at most one session.
//
// Load reports ok=false when nothing usable is stored; that is not an error.
// Implementations must be safe for concurrent use.
type Store interface {
	Save(s Session) error
	Load() (Session, bool, error)
	Clear() error
}

// MemoryStore keeps the session in process memory only.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save replaces the stored session
func (m *MemoryStore) Save(s Session) error {
	if !s.Valid() {
		return ErrIncomplete
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

// Load returns the stored session, if any
func (m *MemoryStore) Load() (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return Session{}, false, nil
	}
	return *m.session, true, nil
}

// Clear drops the stored session
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
