package session

import (
	"context"
	"time"
)

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	// Put inserts a new session. An existing ID yields ErrDuplicateID.
	Put(ctx context.Context, sess Session) error
	// GetByHashedToken returns the session together with its owner.
	// Missing sessions yield ErrNotFound; sessions whose user is gone yield ErrUserNotFound.
	GetByHashedToken(ctx context.Context, id string) (Session, User, error)
	// Delete removes a session. Removing an absent session is not an error.
	Delete(ctx context.Context, id string) error
	// UpdateExpiry sets a new expiry. Concurrent updates are last-write-wins.
	// A missing session returns ErrNotFound.
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	// DeleteAllForUser removes every session owned by userID.
	DeleteAllForUser(ctx context.Context, userID string) error
}

// UserResolver looks up users for stores that do not hold them.
// A missing user must be reported as ErrUserNotFound.
type UserResolver interface {
	UserByID(ctx context.Context, id string) (User, error)
}

// UserResolverFunc adapts a function to UserResolver.
type UserResolverFunc func(ctx context.Context, id string) (User, error)

// UserByID calls f.
func (f UserResolverFunc) UserByID(ctx context.Context, id string) (User, error) {
	return f(ctx, id)
}
