package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
)

type Option[C handler.Context] func(*mux[C])

// WithErrorHandler renders errors returned by responses and recovered panics.
// A nil handler keeps the default plain-text one.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware is Use at construction time.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory builds the per-request context from the writer, the
// request and the URL parameters.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger receives panics that happen after the response was written.
func WithLogger[C handler.Context](l *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if l != nil {
			m.logger = l
		}
	}
}
