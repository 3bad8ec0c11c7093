package session

import (
	"context"
	"time"
)

// Session mirrors a sessions row. Records are immutable after creation;
// invalidation is deletion, never a field flip.
type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Valid reports whether the session is live at the given instant.
func (s Session) Valid(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

// Store abstracts persistence for session state.
//
// All operations are atomic at single-record granularity; sessions never
// reference each other, so no cross-record transactions exist.
type Store interface {
	// Create mints a session with a fresh unguessable id and
	// expires_at = now + ttl, persists it, and returns the full record.
	Create(ctx context.Context, now time.Time, userID int64, ttl time.Duration) (Session, error)

	// Lookup returns the session only if it exists AND expires_at > now.
	// An expired-but-not-yet-reaped row must not be returned; expiry is
	// enforced here, not by reaper timing. Returns ErrSessionNotFound
	// otherwise.
	Lookup(ctx context.Context, id string, now time.Time) (Session, error)

	// Delete removes a session. Deleting an absent id is a no-op, not an error.
	Delete(ctx context.Context, id string) error

	// PurgeExpired deletes every row with expires_at <= now and reports how
	// many were removed. Used only by the reaper.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
