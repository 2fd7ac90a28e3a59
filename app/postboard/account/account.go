package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/core/session"
	"github.com/dmitrymomot/postboard/core/validator"
	"github.com/dmitrymomot/postboard/pkg/randomid"
)

// AnonymousName is shown for content whose author can no longer be resolved.
const AnonymousName = "Anonymous"

// dummyPassword is hashed once and verified for unknown usernames so that
// login timing does not reveal whether an account exists.
const dummyPassword = "postboard-dummy-password"

// Credentials is the login and registration form.
type Credentials struct {
	Username string `form:"username" validate:"required;min:3;max:31;regex:^[A-Za-z0-9_-]+$,letters digits _ and -"`
	Password string `form:"password,raw" validate:"required;min:6;max:255"`
}

// Validate checks the shape of the credentials without touching storage.
func (c Credentials) Validate() error {
	if err := validator.ValidateStruct(&c); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// Result is a successful authentication: the user and a fresh session.
// Token is the only value that may be sent to the client.
type Result struct {
	User    session.User
	Token   string
	Session session.Session
}

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, encodedHash, password string) bool
}

// Sessions is the part of session.Manager the service drives.
type Sessions interface {
	Create(ctx context.Context, userID string) (string, session.Session, error)
	Invalidate(ctx context.Context, sessionID string) error
	InvalidateAllForUser(ctx context.Context, userID string) error
}

// Transactor runs fn atomically. The default runs fn directly.
type Transactor func(ctx context.Context, fn func(ctx context.Context) error) error

// Service registers, authenticates and deletes accounts.
type Service struct {
	users    UserStore
	sessions Sessions
	hasher   Hasher
	inTx     Transactor
	log      *slog.Logger
	newID    func() string

	dummyMu   sync.Mutex
	dummyHash string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTransactor makes DeleteAccount atomic across the session and user stores.
func WithTransactor(tx Transactor) Option {
	return func(s *Service) {
		if tx != nil {
			s.inTx = tx
		}
	}
}

// WithIDGenerator overrides user ID generation. Defaults to randomid.New.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService creates an account service.
func NewService(users UserStore, sessions Sessions, hasher Hasher, opts ...Option) *Service {
	s := &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		log:      logger.Nop(),
		newID:    randomid.New,
		inTx: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and signs it in.
// Shape checks run before the hasher or storage are touched.
func (s *Service) Register(ctx context.Context, username, password string) (Result, error) {
	creds := Credentials{Username: username, Password: password}
	if err := creds.Validate(); err != nil {
		return Result{}, err
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{ID: s.newID(), Username: username, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return Result{}, ErrUsernameTaken
		}
		return Result{}, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "account registered",
		logger.Component("account"),
		logger.UserID(user.ID),
		logger.Username(user.Username),
	)

	return s.startSession(ctx, user)
}

// Login verifies credentials and starts a session. Malformed input, unknown
// users and wrong passwords all yield ErrInvalidCredentials after the same
// amount of hashing work.
func (s *Service) Login(ctx context.Context, username, password string) (Result, error) {
	if err := (Credentials{Username: username, Password: password}).Validate(); err != nil {
		s.hasher.Verify(ctx, s.dummy(ctx), password)
		return Result{}, ErrInvalidCredentials
	}

	user, err := s.users.UserByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		s.hasher.Verify(ctx, s.dummy(ctx), password)
		return Result{}, ErrInvalidCredentials
	case err != nil:
		return Result{}, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(ctx, user.PasswordHash, password) {
		return Result{}, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// Logout ends a session. Ending an absent session succeeds.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Invalidate(ctx, sessionID)
}

// DeleteAccount removes every session of the user, then the user.
// Posts and comments go with the user row.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	err := s.inTx(ctx, func(ctx context.Context) error {
		if err := s.sessions.InvalidateAllForUser(ctx, userID); err != nil {
			return err
		}
		if err := s.users.DeleteUser(ctx, userID); err != nil && !errors.Is(err, ErrUserNotFound) {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "account deleted", logger.Component("account"), logger.UserID(userID))
	return nil
}

// Profile returns the public projection of the user with the given username.
func (s *Service) Profile(ctx context.Context, username string) (session.User, error) {
	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		return session.User{}, err
	}
	return user.Public(), nil
}

// Username returns the username for userID, or AnonymousName when it
// cannot be resolved.
func (s *Service) Username(ctx context.Context, userID string) string {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.log.ErrorContext(ctx, "failed to resolve username",
				logger.Component("account"),
				logger.UserID(userID),
				logger.Error(err),
			)
		}
		return AnonymousName
	}
	return user.Username
}

func (s *Service) startSession(ctx context.Context, user User) (Result, error) {
	token, sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return Result{}, fmt.Errorf("create session: %w", err)
	}
	return Result{User: user.Public(), Token: token, Session: sess}, nil
}

// dummy returns the hash verified for logins that match no user. A failed
// attempt is retried by the next caller.
func (s *Service) dummy(ctx context.Context) string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash == "" {
		hash, err := s.hasher.Hash(context.WithoutCancel(ctx), dummyPassword)
		if err != nil {
			s.log.ErrorContext(ctx, "failed to prepare dummy hash", logger.Component("account"), logger.Error(err))
			return ""
		}
		s.dummyHash = hash
	}
	return s.dummyHash
}
