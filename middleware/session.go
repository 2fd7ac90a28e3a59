package middleware

import (
	"context"

	"github.com/dmitrymomot/postboard/core/handler"
	"github.com/dmitrymomot/postboard/core/response"
	"github.com/dmitrymomot/postboard/core/session"
)

type identityKey struct{}

// IdentityLoader resolves the identity of a request. It never fails.
type IdentityLoader interface {
	Load(handler.Context) session.Identity
}

// Session resolves the request identity once, before the handler runs,
// and stores it in the request context. Anonymous requests proceed with
// the zero Identity.
//
//	r.Use(middleware.Session[*postboard.Context](transport))
//
//	func home(ctx *postboard.Context) handler.Response {
//		ident := middleware.GetIdentity(ctx)
//		if ident.IsAuthenticated() { ... }
//	}
func Session[C handler.Context](loader IdentityLoader) handler.Middleware[C] {
	if loader == nil {
		panic("session middleware: loader is required")
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if _, ok := ctx.Value(identityKey{}).(session.Identity); ok {
				return next(ctx)
			}
			ctx.SetValue(identityKey{}, loader.Load(ctx))
			return next(ctx)
		}
	}
}

// GetIdentity returns the identity stored by Session, or the anonymous identity.
func GetIdentity(ctx context.Context) session.Identity {
	if ctx == nil {
		return session.Identity{}
	}
	ident, _ := ctx.Value(identityKey{}).(session.Identity)
	return ident
}

// RequireAuth rejects anonymous requests. A nil onDenied responds with 401.
func RequireAuth[C handler.Context](onDenied handler.HandlerFunc[C]) handler.Middleware[C] {
	return requireIdentity(true, onDenied, response.ErrUnauthorized)
}

// RequireGuest rejects authenticated requests. A nil onDenied responds with 403.
func RequireGuest[C handler.Context](onDenied handler.HandlerFunc[C]) handler.Middleware[C] {
	return requireIdentity(false, onDenied, response.ErrForbidden)
}

func requireIdentity[C handler.Context](wantAuth bool, onDenied handler.HandlerFunc[C], deny error) handler.Middleware[C] {
	if onDenied == nil {
		onDenied = func(C) handler.Response { return response.Error(deny) }
	}
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if GetIdentity(ctx).IsAuthenticated() != wantAuth {
				return onDenied(ctx)
			}
			return next(ctx)
		}
	}
}
