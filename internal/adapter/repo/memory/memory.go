// Package memory is the zero-dependency repository used in dev mode and
// tests. Records live in a map guarded by a mutex.
package memory

import (
	"sync"

	"github.com/quickhire/profile-engine/internal/domain"
)

// ProfileRepo keeps profile records in process memory.
type ProfileRepo struct {
	mu      sync.RWMutex
	records map[string]domain.Profile
}

// NewProfileRepo constructs an empty in-memory repo.
func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{records: map[string]domain.Profile{}}
}

// Get loads the record for a subject, or domain.ErrNotFound.
func (r *ProfileRepo) Get(_ domain.Context, subject string) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.records[subject]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p.Clone(), nil
}

// Put stores the full record for a subject.
func (r *ProfileRepo) Put(_ domain.Context, subject string, p domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[subject] = p.Clone()
	return nil
}
