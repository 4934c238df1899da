// Package sessions implements the dev session token store, backed by Redis
// in deployments and by process memory when no Redis URL is configured.
package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/quickhire/profile-engine/internal/domain"
)

const keyPrefix = "session:"

// RedisStore issues opaque tokens and resolves them to subjects with a TTL
// enforced by Redis expiry.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore constructs a store over an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Issue creates a fresh token mapped to the subject for the given TTL.
func (s *RedisStore) Issue(ctx domain.Context, subject string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, keyPrefix+token, subject, ttl).Err(); err != nil {
		return "", fmt.Errorf("op=sessions.issue: %w", err)
	}
	return token, nil
}

// Resolve returns the subject for a live token. Expired and unknown tokens
// both come back as domain.ErrUnauthorized; the caller cannot tell them
// apart and does not need to.
func (s *RedisStore) Resolve(ctx domain.Context, token string) (string, error) {
	subject, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("op=sessions.resolve: %w", err)
	}
	return subject, nil
}
