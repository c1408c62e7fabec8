// Package credentials holds the persisted client identity: the bearer
// token and the username attached to every outbound request. It replaces
// ambient storage with an injected provider so the HTTP layer never
// reaches into globals.
package credentials

import (
	"sync"
)

// Provider exposes the stored credential to the HTTP layer. Token and
// Username are read on every outbound request; ClearToken is invoked when
// the backend answers 401.
type Provider interface {
	Token() string
	Username() string
	SetToken(token string) error
	SetUsername(username string) error
	ClearToken() error
}

// MemoryStore is an in-memory Provider. Used in tests and as the fallback
// when no credentials file is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	token    string
	username string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) SetUsername(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	return nil
}

func (s *MemoryStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
