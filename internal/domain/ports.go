package domain

import "time"

// Server-side ports, implemented by the repository and messaging adapters
// of the reference Profile Service.

// ProfileRepository persists canonical records keyed by the authenticated
// subject (candidate id).
type ProfileRepository interface {
	Get(ctx Context, subject string) (Profile, error)
	Put(ctx Context, subject string, p Profile) error
}

// SessionStore issues and resolves opaque bearer tokens for dev sessions.
type SessionStore interface {
	Issue(ctx Context, subject string, ttl time.Duration) (string, error)
	Resolve(ctx Context, token string) (string, error)
}

// EventPublisher announces successful profile saves to external
// collaborators (header widgets, search indexers).
type EventPublisher interface {
	PublishProfileUpdated(ctx Context, p Profile) error
}
