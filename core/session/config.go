package session

import (
	"time"

	"github.com/dmitrymomot/postboard/pkg/randomid"
)

const (
	// DefaultTTL is the lifetime of a new or renewed session.
	DefaultTTL = 30 * 24 * time.Hour
	// DefaultRenewalWindow is the remaining lifetime below which a session is extended.
	DefaultRenewalWindow = 15 * 24 * time.Hour
)

// Config provides environment-based configuration for the session manager.
type Config struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	RenewalWindow time.Duration `env:"SESSION_RENEWAL_WINDOW" envDefault:"360h"`
}

// DefaultConfig returns the default session policy.
func DefaultConfig() Config {
	return Config{
		TTL:           DefaultTTL,
		RenewalWindow: DefaultRenewalWindow,
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

// WithRenewalWindow sets how close to expiry a session must be before it is extended.
func WithRenewalWindow(window time.Duration) Option {
	return func(m *Manager) {
		m.renewalWindow = window
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithTokenGenerator overrides the token source. Defaults to randomid.Token.
func WithTokenGenerator(gen func() string) Option {
	return func(m *Manager) {
		if gen != nil {
			m.newToken = gen
		}
	}
}

// NewFromConfig creates a Manager from configuration.
// Options are applied after the configured values.
func NewFromConfig(cfg Config, store Store, opts ...Option) (*Manager, error) {
	base := []Option{WithTTL(cfg.TTL), WithRenewalWindow(cfg.RenewalWindow)}
	return NewManager(store, append(base, opts...)...)
}

func defaultOptions(m *Manager) {
	m.ttl = DefaultTTL
	m.renewalWindow = DefaultRenewalWindow
	m.now = time.Now
	m.newToken = randomid.Token
}
