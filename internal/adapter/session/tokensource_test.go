package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhire/profile-engine/internal/domain"
)

func TestStatic(t *testing.T) {
	tok, err := Static("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)
}

func TestStatic_EmptyIsUnauthorized(t *testing.T) {
	_, err := Static("").Token(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestFunc(t *testing.T) {
	calls := 0
	src := Func(func(domain.Context) (string, error) {
		calls++
		return "rotated", nil
	})
	tok, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rotated", tok)
	assert.Equal(t, 1, calls)
}
