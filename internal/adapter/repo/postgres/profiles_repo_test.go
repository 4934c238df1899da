package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickhire/profile-engine/internal/adapter/repo/postgres"
	"github.com/quickhire/profile-engine/internal/domain"
)

// rowStub implements pgx.Row
type rowStub struct{ scan func(dest ...any) error }

func (r rowStub) Scan(dest ...any) error { return r.scan(dest...) }

type poolStub struct {
	execErr  error
	execArgs []any
	row      rowStub
}

func (p *poolStub) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	p.execArgs = args
	return pgconn.CommandTag{}, p.execErr
}

func (p *poolStub) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	if p.row.scan == nil {
		return rowStub{scan: func(_ ...any) error { return errors.New("no row configured") }}
	}
	return p.row
}

func TestProfileRepo_GetDecodesRecord(t *testing.T) {
	stored := domain.Profile{CandidateCode: "CAND-1", FullName: "Ada", Skills: []domain.Skill{{Name: "Go", Experience: "3 year"}}}
	raw, err := json.Marshal(stored)
	require.NoError(t, err)

	pool := &poolStub{row: rowStub{scan: func(dest ...any) error {
		*(dest[0].(*[]byte)) = raw
		return nil
	}}}
	r := postgres.NewProfileRepo(pool)

	got, err := r.Get(context.Background(), "cand-1")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestProfileRepo_GetNotFound(t *testing.T) {
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	r := postgres.NewProfileRepo(pool)

	_, err := r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileRepo_PutEncodesRecord(t *testing.T) {
	pool := &poolStub{}
	r := postgres.NewProfileRepo(pool)

	err := r.Put(context.Background(), "cand-1", domain.Profile{CandidateCode: "CAND-1", City: "Austin"})
	require.NoError(t, err)

	require.Len(t, pool.execArgs, 3)
	assert.Equal(t, "cand-1", pool.execArgs[0])
	var decoded domain.Profile
	require.NoError(t, json.Unmarshal(pool.execArgs[1].([]byte), &decoded))
	assert.Equal(t, "Austin", decoded.City)
}

func TestProfileRepo_PutError(t *testing.T) {
	pool := &poolStub{execErr: errors.New("connection reset")}
	r := postgres.NewProfileRepo(pool)

	err := r.Put(context.Background(), "cand-1", domain.Profile{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=profiles.put")
}
