package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickhire/profile-engine/internal/domain"
)

type memEntry struct {
	subject string
	expires time.Time
}

// MemoryStore is the dev fallback when no Redis URL is configured. Tokens
// do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryStore constructs an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]memEntry{}, now: time.Now}
}

// Issue creates a fresh token mapped to the subject for the given TTL.
func (s *MemoryStore) Issue(_ domain.Context, subject string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	s.entries[token] = memEntry{subject: subject, expires: s.now().Add(ttl)}
	s.mu.Unlock()
	return token, nil
}

// Resolve returns the subject for a live token, or domain.ErrUnauthorized.
func (s *MemoryStore) Resolve(_ domain.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return "", domain.ErrUnauthorized
	}
	if s.now().After(e.expires) {
		delete(s.entries, token)
		return "", domain.ErrUnauthorized
	}
	return e.subject, nil
}
