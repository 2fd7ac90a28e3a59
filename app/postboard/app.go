package postboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/app/postboard/content"
	"github.com/dmitrymomot/postboard/app/postboard/memstore"
	"github.com/dmitrymomot/postboard/core/config"
	"github.com/dmitrymomot/postboard/core/cookie"
	"github.com/dmitrymomot/postboard/core/health"
	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/core/router"
	"github.com/dmitrymomot/postboard/core/server"
	"github.com/dmitrymomot/postboard/core/session"
	"github.com/dmitrymomot/postboard/core/sessiontransport"
	"github.com/dmitrymomot/postboard/pkg/password"
	"github.com/dmitrymomot/postboard/pkg/randomid"
)

// Stores are the persistence backends of the application.
// Tx, when set, makes account deletion atomic across Users and Sessions.
type Stores struct {
	Users    account.UserStore
	Sessions session.Store
	Posts    content.PostStore
	Comments content.CommentStore
	Tx       account.Transactor
}

type App struct {
	config   Config
	logger   *slog.Logger
	router   router.Router[*Context]
	server   *server.Server
	cookies  *cookie.Manager
	sessions *session.Manager
	auth     *sessiontransport.Cookie
	hasher   account.Hasher
	accounts *account.Service
	content  *content.Service
	stores   Stores
	checks   []health.Check
}

type AppOption func(*App) error

// NewApp loads Config from the environment, applies opts and wires the
// services. Without WithStores everything is kept in memory.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{
		config: cfg,
		logger: logger.Nop(),
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.stores.Users == nil {
		mem := memstore.New()
		app.stores = Stores{
			Users:    mem,
			Sessions: session.NewMemoryStore(account.Resolver(mem)),
			Posts:    mem,
			Comments: mem,
		}
	}
	if app.stores.Sessions == nil || app.stores.Posts == nil || app.stores.Comments == nil {
		return nil, ErrIncompleteStores
	}

	if app.cookies == nil {
		cm, err := app.newCookieManager()
		if err != nil {
			return nil, err
		}
		app.cookies = cm
	}

	if app.sessions == nil {
		sm, err := session.NewFromConfig(app.config.Session, app.stores.Sessions)
		if err != nil {
			return nil, err
		}
		app.sessions = sm
	}

	app.auth = sessiontransport.NewCookieFromConfig(
		app.config.SessionCookie,
		app.sessions,
		app.cookies,
		sessiontransport.WithLogger(app.logger),
	)

	if app.hasher == nil {
		app.hasher = password.NewHasher()
	}

	app.accounts = account.NewService(app.stores.Users, app.sessions, app.hasher,
		account.WithLogger(app.logger),
		account.WithTransactor(app.stores.Tx),
	)
	app.content = content.NewService(app.stores.Posts, app.stores.Comments,
		content.WithLogger(app.logger),
	)

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	app.router = router.New[*Context](
		router.WithContextFactory(newContext),
		router.WithErrorHandler[*Context](app.handleError),
		router.WithLogger[*Context](app.logger),
	)
	app.routes()

	return app, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.router
}

// Run serves HTTP until ctx is canceled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.router))

	a.logger.InfoContext(ctx, "postboard started",
		logger.Component("app"),
		slog.String("env", a.config.Env),
		slog.String("addr", a.config.Server.Addr),
	)
	return g.Wait()
}

// newCookieManager builds the cookie manager from config. Outside production
// a missing COOKIE_SECRETS gets a per-process secret, so flashes do not
// survive restarts.
func (a *App) newCookieManager() (*cookie.Manager, error) {
	var opts []cookie.Option
	if a.config.IsProduction() {
		opts = append(opts, cookie.WithSecure(true))
	}

	cm, err := cookie.NewFromConfig(a.config.Cookie, opts...)
	if errors.Is(err, cookie.ErrNoSecret) && !a.config.IsProduction() {
		a.logger.Warn("COOKIE_SECRETS is not set, using an ephemeral secret", logger.Component("app"))
		cfg := a.config.Cookie
		cfg.Secrets = randomid.Token()
		return cookie.NewFromConfig(cfg, opts...)
	}
	return cm, err
}

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		return nil
	}
}

func WithLogger(l *slog.Logger) AppOption {
	return func(app *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = l
		return nil
	}
}

func WithStores(stores Stores) AppOption {
	return func(app *App) error {
		if stores.Users == nil {
			return errors.New("user store cannot be nil")
		}
		app.stores = stores
		return nil
	}
}

func WithServer(s *server.Server) AppOption {
	return func(app *App) error {
		if s == nil {
			return errors.New("server cannot be nil")
		}
		app.server = s
		return nil
	}
}

func WithCookieManager(cm *cookie.Manager) AppOption {
	return func(app *App) error {
		if cm == nil {
			return errors.New("cookie manager cannot be nil")
		}
		app.cookies = cm
		return nil
	}
}

func WithSessionManager(sm *session.Manager) AppOption {
	return func(app *App) error {
		if sm == nil {
			return errors.New("session manager cannot be nil")
		}
		app.sessions = sm
		return nil
	}
}

// WithHasher replaces the Argon2id hasher, mostly to speed up tests.
func WithHasher(h account.Hasher) AppOption {
	return func(app *App) error {
		if h == nil {
			return errors.New("hasher cannot be nil")
		}
		app.hasher = h
		return nil
	}
}

// WithHealthChecks adds readiness probes served at /health/ready.
func WithHealthChecks(checks ...health.Check) AppOption {
	return func(app *App) error {
		app.checks = append(app.checks, checks...)
		return nil
	}
}
