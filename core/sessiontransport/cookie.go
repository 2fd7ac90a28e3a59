package sessiontransport

import (
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/postboard/core/cookie"
	"github.com/dmitrymomot/postboard/core/handler"
	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/core/session"
)

// Cookie carries the session token in an HTTP cookie.
// The cookie value is the raw token; the store only ever sees its hash.
type Cookie struct {
	manager *session.Manager
	cookies *cookie.Manager
	name    string
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Cookie transport.
type Option func(*Cookie)

// WithLogger sets the logger used for storage failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cookie) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source used to compute cookie MaxAge.
func WithClock(now func() time.Time) Option {
	return func(c *Cookie) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCookie creates a cookie transport. Cookie attributes other than
// expiry come from the cookie manager defaults.
func NewCookie(mgr *session.Manager, cookies *cookie.Manager, name string, opts ...Option) *Cookie {
	c := &Cookie{
		manager: mgr,
		cookies: cookies,
		name:    name,
		logger:  logger.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the cookie name.
func (c *Cookie) Name() string {
	return c.name
}

// Load resolves the request's identity. It never fails: every problem
// degrades to the anonymous identity.
//
// Without a cookie the store is not consulted. An invalid token clears the
// cookie. A renewed session reissues the cookie with the new expiry. A
// storage failure keeps the cookie so the next request can retry.
func (c *Cookie) Load(ctx handler.Context) session.Identity {
	token, err := c.cookies.Get(ctx.Request(), c.name)
	if err != nil || token == "" {
		return session.Identity{}
	}

	ident, err := c.manager.Validate(ctx, token)
	switch {
	case errors.Is(err, session.ErrInvalid):
		if errors.Is(err, session.ErrDeleteSession) {
			c.logger.ErrorContext(ctx, "failed to delete invalid session",
				logger.Component("sessiontransport"),
				logger.Error(err),
			)
		}
		c.Clear(ctx)
		return session.Identity{}
	case err != nil:
		c.logger.ErrorContext(ctx, "failed to validate session",
			logger.Component("sessiontransport"),
			logger.Error(err),
		)
		return session.Identity{}
	}

	if ident.Renewed {
		if err := c.Issue(ctx, token, ident.Session); err != nil {
			c.logger.ErrorContext(ctx, "failed to reissue renewed session cookie",
				logger.Component("sessiontransport"),
				logger.UserID(ident.User.ID),
				logger.Error(err),
			)
		}
	}

	return ident
}

// Issue writes the session cookie with Expires and MaxAge matching sess.
func (c *Cookie) Issue(ctx handler.Context, token string, sess session.Session) error {
	maxAge := int(sess.ExpiresAt.Sub(c.now()).Seconds())
	if maxAge <= 0 {
		return ErrExpiredSession
	}

	return c.cookies.Set(ctx.ResponseWriter(), c.name, token,
		cookie.WithExpires(sess.ExpiresAt),
		cookie.WithMaxAge(maxAge),
	)
}

// Clear expires the session cookie on the client.
func (c *Cookie) Clear(ctx handler.Context) {
	c.cookies.Delete(ctx.ResponseWriter(), c.name)
}
