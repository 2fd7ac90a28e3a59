package postboard

import (
	"strings"
	"time"

	"github.com/dmitrymomot/postboard/app/postboard/views"
	"github.com/dmitrymomot/postboard/core/handler"
	"github.com/dmitrymomot/postboard/core/health"
	"github.com/dmitrymomot/postboard/core/router"
	"github.com/dmitrymomot/postboard/core/static"
	"github.com/dmitrymomot/postboard/middleware"
)

func (a *App) routes() {
	r := a.router
	r.Use(
		middleware.RequestID[*Context](),
		middleware.LoggingWithConfig[*Context](middleware.LoggingConfig{
			Logger: a.logger,
			Skip:   func(ctx handler.Context) bool { return isQuietPath(ctx.Request().URL.Path) },
		}),
		middleware.SecurityHeadersWithConfig[*Context](a.securityHeaders()),
	)

	r.Get("/static/*", static.FS[*Context](views.Assets(),
		static.WithStripPrefix("/static"),
		static.WithMaxAge(time.Hour),
	))

	r.Route("/health", func(r router.Router[*Context]) {
		r.Get("/live", health.Liveness[*Context])
		r.Get("/ready", health.Readiness[*Context](a.logger, a.checks...))
	})

	r.Group(func(r router.Router[*Context]) {
		r.Use(
			middleware.BodyLimit[*Context](a.config.MaxBodyBytes),
			middleware.Session[*Context](a.auth),
		)

		r.Get("/", a.home)
		r.Post("/login", a.login)
		r.Post("/register", a.register)
		r.Get("/u/{username}", a.profile)
		r.Get("/u/{username}/{postID}", a.post)
		r.Get("/api/username_by_id/{id}", a.usernameByID)
		r.Get("/api/username_by_id", a.usernameByID)
		r.Get("/api/username_by_id/", a.usernameByID)

		r.Group(func(r router.Router[*Context]) {
			r.Use(middleware.RequireAuth[*Context](a.loginRequired))

			r.Post("/logout", a.logout)
			r.Post("/account/delete", a.deleteAccount)
			r.Get("/posts/new", a.newPost)
			r.Post("/posts", a.createPost)
			r.Post("/posts/{postID}/edit", a.updatePost)
			r.Post("/posts/{postID}/delete", a.deletePost)
			r.Post("/posts/{postID}/comments", a.addComment)
		})
	})
}

func (a *App) securityHeaders() middleware.SecurityHeadersConfig {
	cfg := middleware.DefaultSecurityHeaders
	cfg.IsDevelopment = !a.config.IsProduction()
	return cfg
}

// isQuietPath reports probe and asset requests, which are not logged.
func isQuietPath(path string) bool {
	return strings.HasPrefix(path, "/health/") || strings.HasPrefix(path, "/static/")
}
