package cookie

import (
	"net/http"
	"strings"
)

// Config provides environment-based configuration for cookie manager.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS" envDefault:""`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // SameSiteLaxMode
	MaxSize  int           `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
}

// DefaultConfig returns a Config with secure defaults.
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		MaxSize:  MaxCookieSize,
	}
}

// parseSecrets splits comma-separated secrets for key rotation support.
func (c Config) parseSecrets() []string {
	var secrets []string
	for s := range strings.SplitSeq(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// NewFromConfig creates a Manager from configuration.
// Only non-zero config values override defaults. HttpOnly is always on.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	configOpts := make([]Option, 0, 4+len(opts))

	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(true))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}

	m, err := New(cfg.parseSecrets(), append(configOpts, opts...)...)
	if err != nil {
		return nil, err
	}

	if cfg.MaxSize > 0 {
		m.maxSize = cfg.MaxSize
	}

	return m, nil
}
