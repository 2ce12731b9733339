package store

// #region imports
import (
	"sync"
	"time"

	"github.com/mockstage/interview-engine/internal/session"
)

// #endregion

// #region memory-struct

type memoryEntry struct {
	state     session.State
	expiresAt time.Time
}

// Memory is the in-process store for degraded/local mode. Entries expire
// lazily on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// #endregion

// #region operations

// Get returns a deep copy of the stored state, or ErrNotFound.
func (m *Memory) Get(id string) (session.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return session.State{}, ErrNotFound
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, id)
		return session.State{}, ErrNotFound
	}
	return e.state.Clone(), nil
}

// Set stores a deep copy of st under id, replacing any previous entry.
func (m *Memory) Set(id string, st session.State, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{
		state:     st.Clone(),
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

// Delete removes the entry. Deleting a missing id is not an error.
func (m *Memory) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// #endregion
