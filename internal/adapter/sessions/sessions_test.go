package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhire/profile-engine/internal/domain"
)

func TestRedisStore_IssueResolve(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb)

	token, err := s.Issue(context.Background(), "cand-1", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := s.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "cand-1", subject)
}

func TestRedisStore_ExpiredToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb)

	token, err := s.Issue(context.Background(), "cand-1", time.Minute)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = s.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRedisStore_UnknownToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(rdb)

	_, err := s.Resolve(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMemoryStore_IssueResolve(t *testing.T) {
	s := NewMemoryStore()

	token, err := s.Issue(context.Background(), "cand-1", time.Minute)
	require.NoError(t, err)

	subject, err := s.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "cand-1", subject)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore()
	base := time.Now()
	s.now = func() time.Time { return base }

	token, err := s.Issue(context.Background(), "cand-1", time.Minute)
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = s.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
