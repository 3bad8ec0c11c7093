package identity

import (
	"context"
	"time"
)

// User is authd's canonical security principal.
// PasswordHash never leaves the auth service boundary.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Store is the user lookup boundary. Implementations are read-only:
// authd never creates or mutates user records.
type Store interface {
	// GetByUsername loads a user by exact username.
	// Returns a NotFoundError (errors.Is ErrNotFound) when absent.
	GetByUsername(ctx context.Context, username string) (User, error)

	// GetByID loads a user by primary key.
	GetByID(ctx context.Context, id int64) (User, error)
}
