// Package profile holds the last-known-good candidate record and the
// derived completeness score.
package profile

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/quickhire/profile-engine/internal/domain"
)

// Listener is notified with a copy of the record after every successful
// load or replace, so dependents (completeness widgets, header summaries)
// can recompute.
type Listener func(domain.Profile)

// Store keeps the last synchronized profile record. Partial field updates
// are not permitted from outside the edit commit path; the record is only
// ever replaced wholesale.
type Store struct {
	sync domain.SyncClient

	mu        sync.Mutex
	record    domain.Profile
	loaded    bool
	listeners []Listener
}

// NewStore constructs a Store backed by the given sync client.
func NewStore(sc domain.SyncClient) *Store {
	return &Store{sync: sc}
}

// Load fetches the record from the Profile Service and installs it. A 404
// leaves the store empty and returns domain.ErrNotFound so the caller can
// route to the create-profile affordance instead of raising a toast.
func (s *Store) Load(ctx domain.Context) error {
	rec, err := s.sync.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("op=store.load: %w", err)
	}
	s.Replace(rec)
	slog.Info("profile loaded", slog.String("candidate_code", rec.CandidateCode))
	return nil
}

// Replace installs a new canonical record and notifies listeners.
func (s *Store) Replace(rec domain.Profile) {
	s.mu.Lock()
	s.record = rec
	s.loaded = true
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(rec.Clone())
	}
}

// Current returns a copy of the record and whether one has been loaded.
func (s *Store) Current() (domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone(), s.loaded
}

// Subscribe registers a listener for future loads and replaces. If a record
// is already present the listener is invoked immediately with it.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	rec, loaded := s.record, s.loaded
	s.mu.Unlock()
	if loaded {
		fn(rec.Clone())
	}
}

// Completeness returns the derived completeness score for the current
// record, or 0 when nothing is loaded.
func (s *Store) Completeness() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return 0
	}
	return Completeness(s.record)
}
