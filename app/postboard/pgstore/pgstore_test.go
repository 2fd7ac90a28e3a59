package pgstore_test

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/app/postboard/content"
	"github.com/dmitrymomot/postboard/app/postboard/pgstore"
	"github.com/dmitrymomot/postboard/core/session"
)

func newStore(t *testing.T) (*pgstore.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return pgstore.New(db), mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

func TestMigrations(t *testing.T) {
	t.Parallel()
	body, err := fs.ReadFile(pgstore.Migrations(), "00001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "ON DELETE CASCADE")
}

func TestUsers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("INSERT INTO users")).
			WithArgs("u1", "alice", "hash").
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, s.CreateUser(ctx, account.User{ID: "u1", Username: "alice", PasswordHash: "hash"}))
	})

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("INSERT INTO users")).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		err := s.CreateUser(ctx, account.User{ID: "u1", Username: "alice"})
		assert.ErrorIs(t, err, account.ErrUsernameTaken)
	})

	t.Run("by username", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("FROM users WHERE username = $1")).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}).AddRow("u1", "alice", "hash"))
		u, err := s.UserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, account.User{ID: "u1", Username: "alice", PasswordHash: "hash"}, u)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("FROM users WHERE id = $1")).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash"}))
		_, err := s.UserByID(ctx, "nope")
		assert.ErrorIs(t, err, account.ErrUserNotFound)
	})

	t.Run("db failure is wrapped", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		boom := errors.New("db down")
		mock.ExpectQuery(q("FROM users WHERE id = $1")).WillReturnError(boom)
		_, err := s.UserByID(ctx, "u1")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, account.ErrUserNotFound)
	})
}

func TestDeleteAccountInTx(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, mock := newStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM sessions WHERE user_id = $1")).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("DELETE FROM users WHERE id = $1")).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Tx(ctx, func(ctx context.Context) error {
		if err := s.Sessions().DeleteAllForUser(ctx, "u1"); err != nil {
			return err
		}
		return s.DeleteUser(ctx, "u1")
	})
	require.NoError(t, err)
}

func TestTxRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, mock := newStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM sessions WHERE user_id = $1")).WillReturnError(boom)
	mock.ExpectRollback()

	err := s.Tx(ctx, func(ctx context.Context) error {
		return s.Sessions().DeleteAllForUser(ctx, "u1")
	})
	assert.ErrorIs(t, err, boom)
}

func TestSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	expires := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "user_id", "expires_at", "uid", "username"}

	t.Run("put", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("INSERT INTO sessions")).
			WithArgs("h1", "u1", expires).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, s.Sessions().Put(ctx, session.Session{ID: "h1", UserID: "u1", ExpiresAt: expires}))
	})

	t.Run("put duplicate", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("INSERT INTO sessions")).WillReturnError(&pgconn.PgError{Code: "23505"})
		err := s.Sessions().Put(ctx, session.Session{ID: "h1", UserID: "u1", ExpiresAt: expires})
		assert.ErrorIs(t, err, session.ErrDuplicateID)
	})

	t.Run("put for missing user", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("INSERT INTO sessions")).WillReturnError(&pgconn.PgError{Code: "23503"})
		err := s.Sessions().Put(ctx, session.Session{ID: "h1", UserID: "gone", ExpiresAt: expires})
		assert.ErrorIs(t, err, session.ErrUserNotFound)
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("FROM sessions s LEFT JOIN users u")).
			WithArgs("h1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("h1", "u1", expires, "u1", "alice"))
		sess, user, err := s.Sessions().GetByHashedToken(ctx, "h1")
		require.NoError(t, err)
		assert.Equal(t, session.Session{ID: "h1", UserID: "u1", ExpiresAt: expires}, sess)
		assert.Equal(t, session.User{ID: "u1", Username: "alice"}, user)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("FROM sessions s LEFT JOIN users u")).WillReturnRows(sqlmock.NewRows(cols))
		_, _, err := s.Sessions().GetByHashedToken(ctx, "h1")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("get orphan", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("FROM sessions s LEFT JOIN users u")).
			WillReturnRows(sqlmock.NewRows(cols).AddRow("h1", "u1", expires, nil, nil))
		_, _, err := s.Sessions().GetByHashedToken(ctx, "h1")
		assert.ErrorIs(t, err, session.ErrUserNotFound)
	})

	t.Run("update expiry", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		next := expires.Add(24 * time.Hour)
		mock.ExpectExec(q("UPDATE sessions SET expires_at = $2 WHERE id = $1")).
			WithArgs("h1", next).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, s.Sessions().UpdateExpiry(ctx, "h1", next))
	})

	t.Run("update missing", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("UPDATE sessions")).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.Sessions().UpdateExpiry(ctx, "h1", expires), session.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("DELETE FROM sessions WHERE id = $1")).
			WithArgs("h1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		require.NoError(t, s.Sessions().Delete(ctx, "h1"))
	})
}

func TestPostsAndComments(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	postCols := []string{"id", "user_id", "username", "title", "content", "created_at"}
	commentCols := []string{"id", "user_id", "post_id", "username", "text", "created_at"}

	t.Run("list posts", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("ORDER BY p.created_at DESC")).
			WillReturnRows(sqlmock.NewRows(postCols).
				AddRow("p2", "u1", "alice", "B", "b", at.Add(time.Minute)).
				AddRow("p1", "u1", "alice", "A", "a", at))
		posts, err := s.ListPosts(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "p2", posts[0].ID)
		assert.Equal(t, "alice", posts[1].Username)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("WHERE p.user_id = $1")).WithArgs("u1").WillReturnRows(sqlmock.NewRows(postCols))
		posts, err := s.ListPostsByUser(ctx, "u1")
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("post missing", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("WHERE p.id = $1")).WithArgs("p1").WillReturnRows(sqlmock.NewRows(postCols))
		_, err := s.PostByID(ctx, "p1")
		assert.ErrorIs(t, err, content.ErrPostNotFound)
	})

	t.Run("update missing post", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("UPDATE posts")).WithArgs("p1", "t", "c").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, s.UpdatePost(ctx, "p1", "t", "c"), content.ErrPostNotFound)
	})

	t.Run("comment on missing post", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectExec(q("INSERT INTO comments")).WillReturnError(&pgconn.PgError{Code: "23503"})
		err := s.CreateComment(ctx, content.Comment{ID: "c1", UserID: "u1", PostID: "p1", Text: "x", CreatedAt: at})
		assert.ErrorIs(t, err, content.ErrPostNotFound)
	})

	t.Run("recent comments", func(t *testing.T) {
		t.Parallel()
		s, mock := newStore(t)
		mock.ExpectQuery(q("ORDER BY c.created_at DESC, c.id LIMIT $1")).
			WithArgs(20).
			WillReturnRows(sqlmock.NewRows(commentCols).AddRow("c1", "u2", "p1", "bob", "hi", at))
		comments, err := s.ListRecentComments(ctx, 20)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "bob", comments[0].Username)
	})
}
