// Package token persists the access/refresh credential pair used by the
// marketplace API client. Tokens are opaque strings; an empty string means
// no credential is stored.
package token

import "sync"

// Store holds an access/refresh token pair. Implementations must be safe
// for concurrent use: any in-flight refresh may replace the pair while
// other calls read it.
type Store interface {
	// Access returns the stored access token, or "" if absent.
	Access() string
	// Refresh returns the stored refresh token, or "" if absent.
	Refresh() string
	// SetPair replaces both tokens. Both are written together; callers
	// never observe one updated and the other stale.
	SetPair(access, refresh string) error
	// ClearAccess removes only the access token.
	ClearAccess() error
	// ClearPair removes both tokens.
	ClearPair() error
}

// Memory is an in-process Store. It backs tests and one-shot sessions
// that should not persist credentials.
type Memory struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Access implements Store.
func (m *Memory) Access() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

// Refresh implements Store.
func (m *Memory) Refresh() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

// SetPair implements Store.
func (m *Memory) SetPair(access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	m.refresh = refresh
	return nil
}

// ClearAccess implements Store.
func (m *Memory) ClearAccess() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	return nil
}

// ClearPair implements Store.
func (m *Memory) ClearPair() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	return nil
}
