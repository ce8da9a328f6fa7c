package session

import "sync"

type entry struct {
	mu sync.Mutex
	s  Session
}

// Manager owns all user sessions. Sessions are created lazily on first use
// and are never explicitly destroyed; a flow reset supersedes the old state.
type Manager struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewManager constructs an empty in-memory session manager.
func NewManager() *Manager {
	return &Manager{entries: make(map[string]*entry)}
}

func (m *Manager) entryFor(userID string) *entry {
	m.mu.RLock()
	e, ok := m.entries[userID]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.entries[userID]; ok {
		return e
	}
	e = &entry{s: Session{Stage: StageIdle, Flow: FlowNone}}
	m.entries[userID] = e
	return e
}

// Do runs fn while holding the per-user lock, serializing every event for
// one user across concurrent webhook requests. The session may be mutated
// freely inside fn; mutations are visible to the next Do call for the same
// user.
func (m *Manager) Do(userID string, fn func(*Session) error) error {
	e := m.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.s)
}

// Snapshot returns a copy of the user's current session, creating an idle
// one if none exists. Intended for tests and diagnostics; slices in the copy
// alias the live session and must not be mutated.
func (m *Manager) Snapshot(userID string) Session {
	e := m.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s
}
