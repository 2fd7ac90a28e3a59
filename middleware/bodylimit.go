package middleware

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
	"github.com/dmitrymomot/postboard/core/response"
)

// DefaultBodyLimit caps form submissions; posts are plain text.
const DefaultBodyLimit int64 = 1 << 20

// BodyLimit rejects requests whose declared Content-Length exceeds limit with 413,
// and caps the body reader at limit for requests without one.
// A non-positive limit selects DefaultBodyLimit.
func BodyLimit[C handler.Context](limit int64) handler.Middleware[C] {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			r := ctx.Request()
			if r.ContentLength > limit {
				return response.Error(response.ErrRequestTooLarge.
					WithMessage(fmt.Sprintf("Request body exceeds %d bytes", limit)))
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(ctx.ResponseWriter(), r.Body, limit)
			}
			return next(ctx)
		}
	}
}
