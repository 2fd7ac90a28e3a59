package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrymomot/postboard/core/session"
	"github.com/dmitrymomot/postboard/integration/database/pg"
)

const sessionQuery = `SELECT s.id, s.user_id, s.expires_at, u.id, u.username
FROM sessions s LEFT JOIN users u ON u.id = s.user_id
WHERE s.id = $1`

const (
	insertSessionQuery      = `INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`
	deleteSessionQuery      = `DELETE FROM sessions WHERE id = $1`
	updateSessionQuery      = `UPDATE sessions SET expires_at = $2 WHERE id = $1`
	deleteUserSessionsQuery = `DELETE FROM sessions WHERE user_id = $1`
)

// Sessions returns the store as a session.Store.
func (s *Store) Sessions() session.Store {
	return sessionStore{s}
}

// sessionStore keeps the generic session.Store method names off Store.
type sessionStore struct{ s *Store }

func (ss sessionStore) Put(ctx context.Context, sess session.Session) error {
	_, err := ss.s.conn(ctx).ExecContext(ctx, insertSessionQuery, sess.ID, sess.UserID, sess.ExpiresAt.UTC())
	switch {
	case err == nil:
		return nil
	case pg.IsDuplicateKeyError(err):
		return session.ErrDuplicateID
	case pg.IsForeignKeyViolationError(err):
		return session.ErrUserNotFound
	default:
		return fmt.Errorf("insert session: %w", err)
	}
}

func (ss sessionStore) GetByHashedToken(ctx context.Context, id string) (session.Session, session.User, error) {
	var (
		sess     session.Session
		userID   sql.NullString
		username sql.NullString
	)
	err := ss.s.conn(ctx).QueryRowContext(ctx, sessionQuery, id).
		Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &userID, &username)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return session.Session{}, session.User{}, session.ErrNotFound
		}
		return session.Session{}, session.User{}, fmt.Errorf("select session: %w", err)
	}
	if !userID.Valid {
		return session.Session{}, session.User{}, session.ErrUserNotFound
	}
	return sess, session.User{ID: userID.String, Username: username.String}, nil
}

func (ss sessionStore) Delete(ctx context.Context, id string) error {
	if _, err := ss.s.conn(ctx).ExecContext(ctx, deleteSessionQuery, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (ss sessionStore) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	res, err := ss.s.conn(ctx).ExecContext(ctx, updateSessionQuery, id, expiresAt.UTC())
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (ss sessionStore) DeleteAllForUser(ctx context.Context, userID string) error {
	if _, err := ss.s.conn(ctx).ExecContext(ctx, deleteUserSessionsQuery, userID); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}
