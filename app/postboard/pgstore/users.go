package pgstore

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/integration/database/pg"
)

const (
	insertUserQuery = `INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`
	userByNameQuery = `SELECT id, username, password_hash FROM users WHERE username = $1`
	userByIDQuery   = `SELECT id, username, password_hash FROM users WHERE id = $1`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

func (s *Store) CreateUser(ctx context.Context, u account.User) error {
	_, err := s.conn(ctx).ExecContext(ctx, insertUserQuery, u.ID, u.Username, u.PasswordHash)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return account.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (account.User, error) {
	return s.user(ctx, userByNameQuery, username)
}

func (s *Store) UserByID(ctx context.Context, id string) (account.User, error) {
	return s.user(ctx, userByIDQuery, id)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.conn(ctx).ExecContext(ctx, deleteUserQuery, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *Store) user(ctx context.Context, query, arg string) (account.User, error) {
	var u account.User
	err := s.conn(ctx).QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return account.User{}, account.ErrUserNotFound
		}
		return account.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
