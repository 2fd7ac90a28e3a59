package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/postboard/core/handler"
	"github.com/dmitrymomot/postboard/core/logger"
)

type requestIDContextKey struct{}

// RequestIDHeader is the header carrying the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Generator creates new request IDs (default: UUID v4).
	Generator func() string
	// UseExisting accepts an incoming X-Request-ID instead of generating one.
	UseExisting bool
}

// RequestID assigns a fresh UUID to each request.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig assigns an ID to each request, stores it in the context
// and echoes it in the response header.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			var id string
			if cfg.UseExisting {
				id = ctx.Request().Header.Get(RequestIDHeader)
			}
			if id == "" {
				id = cfg.Generator()
			}

			ctx.SetValue(requestIDContextKey{}, id)
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(RequestIDHeader, id)
				return resp(w, r)
			}
		}
	}
}

// GetRequestID returns the request ID, or an empty string.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// RequestIDExtractor adds the request ID to records logged with a request context.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := GetRequestID(ctx)
	return logger.RequestID(id), id != ""
}

// UserIDExtractor adds the authenticated user's ID to records logged with a request context.
func UserIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := GetIdentity(ctx).User.ID
	return logger.UserID(id), id != ""
}
