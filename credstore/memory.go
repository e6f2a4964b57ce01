package credstore

import (
	"context"
	"sync"
)

// MemoryStore keeps credentials in process memory. Intended for tests and
// short-lived processes that should not leave a mirror behind.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
	set   bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the held credentials or ErrNotFound.
func (s *MemoryStore) Load(_ context.Context) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return Credentials{}, ErrNotFound
	}

	out := Credentials{Token: s.creds.Token}
	if len(s.creds.User) > 0 {
		out.User = append(out.User[:0], s.creds.User...)
	}
	return out, nil
}

// Save replaces the held credentials.
func (s *MemoryStore) Save(_ context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = Credentials{Token: creds.Token}
	if len(creds.User) > 0 {
		s.creds.User = append(s.creds.User[:0], creds.User...)
	}
	s.set = true
	return nil
}

// Clear forgets the held credentials.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = Credentials{}
	s.set = false
	return nil
}
