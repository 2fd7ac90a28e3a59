package account

import (
	"context"
	"errors"

	"github.com/dmitrymomot/postboard/core/session"
)

// User is a stored account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}

// Public drops the credential.
func (u User) Public() session.User {
	return session.User{ID: u.ID, Username: u.Username}
}

// UserStore persists accounts. Username uniqueness is enforced by the store.
type UserStore interface {
	// CreateUser returns ErrUsernameTaken when the username exists.
	CreateUser(ctx context.Context, u User) error
	// UserByUsername and UserByID return ErrUserNotFound when absent.
	UserByUsername(ctx context.Context, username string) (User, error)
	UserByID(ctx context.Context, id string) (User, error)
	// DeleteUser removes the user together with its posts and comments.
	DeleteUser(ctx context.Context, id string) error
}

// Resolver adapts a UserStore to session.UserResolver for session stores
// that keep users elsewhere.
func Resolver(users UserStore) session.UserResolver {
	return session.UserResolverFunc(func(ctx context.Context, id string) (session.User, error) {
		u, err := users.UserByID(ctx, id)
		if errors.Is(err, ErrUserNotFound) {
			return session.User{}, session.ErrUserNotFound
		}
		if err != nil {
			return session.User{}, err
		}
		return u.Public(), nil
	})
}
