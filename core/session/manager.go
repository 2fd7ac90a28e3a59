package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Manager issues, validates, renews and invalidates sessions.
// It holds no per-request state and is safe for concurrent use.
type Manager struct {
	store         Store
	ttl           time.Duration
	renewalWindow time.Duration
	now           func() time.Time
	newToken      func() string
}

// NewManager creates a session manager backed by store.
func NewManager(store Store, opts ...Option) (*Manager, error) {
	m := &Manager{store: store}
	defaultOptions(m)
	for _, opt := range opts {
		opt(m)
	}

	if m.ttl <= 0 || m.renewalWindow <= 0 || m.renewalWindow >= m.ttl {
		return nil, fmt.Errorf("%w: ttl=%s window=%s", ErrInvalidConfig, m.ttl, m.renewalWindow)
	}

	return m, nil
}

// Create starts a session for userID. The returned token is the only value
// that may be sent to the client; the store receives its hash.
func (m *Manager) Create(ctx context.Context, userID string) (string, Session, error) {
	token := m.newToken()
	sess := Session{
		ID:        HashToken(token),
		UserID:    userID,
		ExpiresAt: m.now().Add(m.ttl),
	}

	if err := m.store.Put(ctx, sess); err != nil {
		return "", Session{}, errors.Join(ErrSaveSession, err)
	}

	return token, sess, nil
}

// Validate resolves a client token.
//
// Absent, expired and orphaned sessions yield ErrInvalid; expired and orphaned
// rows are deleted on the way. A session with less than the renewal window
// left is extended to a full TTL and reported with Identity.Renewed set.
// Store failures are returned wrapped and do not match ErrInvalid, except
// when deleting an already invalid row fails or the row vanished before renewal.
func (m *Manager) Validate(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrInvalid
	}

	id := HashToken(token)
	sess, user, err := m.store.GetByHashedToken(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return Identity{}, ErrInvalid
	case errors.Is(err, ErrUserNotFound):
		return Identity{}, m.discard(ctx, id)
	case err != nil:
		return Identity{}, errors.Join(ErrLoadSession, err)
	}

	now := m.now()
	if sess.IsExpired(now) {
		return Identity{}, m.discard(ctx, id)
	}

	ident := Identity{User: user, Session: sess}
	if sess.ExpiresAt.Sub(now) < m.renewalWindow {
		expiresAt := now.Add(m.ttl)
		err := m.store.UpdateExpiry(ctx, id, expiresAt)
		switch {
		case errors.Is(err, ErrNotFound):
			// Deleted by a concurrent logout since the lookup.
			return Identity{}, ErrInvalid
		case err != nil:
			return Identity{}, errors.Join(ErrUpdateSession, err)
		}
		ident.Session.ExpiresAt = expiresAt
		ident.Renewed = true
	}

	return ident, nil
}

// Invalidate deletes a session. Deleting an absent session succeeds.
func (m *Manager) Invalidate(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// InvalidateAllForUser deletes every session owned by userID.
func (m *Manager) InvalidateAllForUser(ctx context.Context, userID string) error {
	if err := m.store.DeleteAllForUser(ctx, userID); err != nil {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// discard removes an invalid row. The result always matches ErrInvalid.
func (m *Manager) discard(ctx context.Context, id string) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrInvalid, ErrDeleteSession, err)
	}
	return ErrInvalid
}
