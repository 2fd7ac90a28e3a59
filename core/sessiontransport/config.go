package sessiontransport

import (
	"github.com/dmitrymomot/postboard/core/cookie"
	"github.com/dmitrymomot/postboard/core/session"
)

// DefaultCookieName is the session cookie name used when none is configured.
const DefaultCookieName = "auth_session"

// CookieConfig provides environment-based configuration for the cookie transport.
type CookieConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"auth_session"`
}

// DefaultCookieConfig returns a CookieConfig with defaults.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{CookieName: DefaultCookieName}
}

// NewCookieFromConfig creates a cookie transport from configuration.
func NewCookieFromConfig(cfg CookieConfig, mgr *session.Manager, cookies *cookie.Manager, opts ...Option) *Cookie {
	name := cfg.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	return NewCookie(mgr, cookies, name, opts...)
}
