package router

import (
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
)

// Router registers handlers that receive a typed request context C.
// Patterns follow chi syntax, e.g. "/u/{username}" or "/static/*".
type Router[C handler.Context] interface {
	http.Handler

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	// Handle matches every method.
	Handle(pattern string, h handler.HandlerFunc[C])
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use panics once a route is registered on the same router.
	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]
	Group(fn func(r Router[C])) Router[C]
	Route(pattern string, fn func(r Router[C])) Router[C]
	Mount(pattern string, h http.Handler)

	// Routes lists registered method and pattern pairs.
	Routes() []Route
}

type Route struct {
	Method  string
	Pattern string
}

// New builds a chi-backed router. C other than *Context needs WithContextFactory.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
