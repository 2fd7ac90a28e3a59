package postboard

import (
	"github.com/dmitrymomot/postboard/core/cookie"
	"github.com/dmitrymomot/postboard/core/server"
	"github.com/dmitrymomot/postboard/core/session"
	"github.com/dmitrymomot/postboard/core/sessiontransport"
	"github.com/dmitrymomot/postboard/middleware"
)

// Storage and session backends.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

const envProduction = "production"

type Config struct {
	Cookie        cookie.Config
	Session       session.Config
	SessionCookie sessiontransport.CookieConfig
	Server        server.Config

	AppName        string `env:"APP_NAME" envDefault:"postboard"`
	Env            string `env:"APP_ENV" envDefault:"development"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"postgres"`
	SessionBackend string `env:"SESSION_BACKEND" envDefault:"postgres"`
	MaxBodyBytes   int64  `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// DefaultConfig runs everything in memory on the default server address.
func DefaultConfig() Config {
	return Config{
		Cookie:         cookie.DefaultConfig(),
		Session:        session.DefaultConfig(),
		SessionCookie:  sessiontransport.DefaultCookieConfig(),
		Server:         server.DefaultConfig(),
		AppName:        "postboard",
		Env:            "development",
		LogLevel:       "info",
		StorageBackend: BackendMemory,
		SessionBackend: BackendMemory,
		MaxBodyBytes:   middleware.DefaultBodyLimit,
	}
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == envProduction
}
