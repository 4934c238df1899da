// Package postgres persists candidate profiles as JSONB documents keyed by
// the authenticated subject.
package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/quickhire/profile-engine/internal/domain"
)

// ProfileRepo stores and loads profile records using a minimal pgx pool.
type ProfileRepo struct{ Pool PgxPool }

// PgxPool is the subset of pgxpool the repo needs, kept small for easy stubbing.
type PgxPool interface {
	Exec(ctx domain.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx domain.Context, sql string, args ...any) pgx.Row
}

// NewProfileRepo constructs a ProfileRepo with the given pool.
func NewProfileRepo(p PgxPool) *ProfileRepo { return &ProfileRepo{Pool: p} }

// EnsureSchema creates the profiles table when it does not exist yet. The
// whole record is one JSONB column; there is no relational breakdown to
// migrate when the profile shape grows a field.
func (r *ProfileRepo) EnsureSchema(ctx domain.Context) error {
	q := `CREATE TABLE IF NOT EXISTS profiles (
		subject TEXT PRIMARY KEY,
		record JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := r.Pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("op=profiles.ensure_schema: %w", err)
	}
	return nil
}

// Get loads the record for a subject, or domain.ErrNotFound.
func (r *ProfileRepo) Get(ctx domain.Context, subject string) (domain.Profile, error) {
	tracer := otel.Tracer("repo.profiles")
	ctx, span := tracer.Start(ctx, "profiles.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "profiles"),
	)
	q := `SELECT record FROM profiles WHERE subject=$1`
	var raw []byte
	if err := r.Pool.QueryRow(ctx, q, subject).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("op=profiles.get: %w", err)
	}
	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("op=profiles.get decode: %w", err)
	}
	return p, nil
}

// Put upserts the full record for a subject.
func (r *ProfileRepo) Put(ctx domain.Context, subject string, p domain.Profile) error {
	tracer := otel.Tracer("repo.profiles")
	ctx, span := tracer.Start(ctx, "profiles.Put")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "profiles"),
	)
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("op=profiles.put encode: %w", err)
	}
	q := `INSERT INTO profiles (subject, record, updated_at) VALUES ($1,$2,$3)
		ON CONFLICT (subject) DO UPDATE SET record=EXCLUDED.record, updated_at=EXCLUDED.updated_at`
	if _, err := r.Pool.Exec(ctx, q, subject, raw, time.Now().UTC()); err != nil {
		return fmt.Errorf("op=profiles.put: %w", err)
	}
	return nil
}
