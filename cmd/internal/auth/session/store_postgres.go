package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// poolIface is the subset of pgxpool.Pool the store needs.
// Kept narrow so tests can substitute a pgxmock pool.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using PostgreSQL (sessions table).
type PostgresStore struct {
	pool poolIface
}

// NewPostgresStore creates a Postgres-backed session store.
func NewPostgresStore(pool poolIface) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("session: nil pool")
	}
	return &PostgresStore{pool: pool}, nil
}

// Create inserts a new session row and returns the full record.
// The id is a v4 UUID: 122 bits of crypto/rand entropy, effectively
// collision-free, and opaque to the client.
func (s *PostgresStore) Create(ctx context.Context, now time.Time, userID int64, ttl time.Duration) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, sess.ID, sess.UserID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return Session{}, fmt.Errorf("session create: %w", err)
	}

	return sess, nil
}

// Lookup loads a live session row. Expiry is checked in the query itself so
// stale rows the reaper has not reached yet are never returned.
func (s *PostgresStore) Lookup(ctx context.Context, id string, now time.Time) (Session, error) {
	var sess Session

	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`, id, now).Scan(&sess.ID, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("session lookup: %w", err)
	}

	return sess, nil
}

// Delete removes a session row (idempotent).
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM sessions WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// PurgeExpired deletes every expired row and reports the count.
func (s *PostgresStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM sessions WHERE expires_at <= $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("session purge: %w", err)
	}
	return tag.RowsAffected(), nil
}
