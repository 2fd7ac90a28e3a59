// Package middleware provides the handler.Middleware components used by the
// application router.
//
//   - Session resolves the request identity once and stores it in the context;
//     GetIdentity reads it back. RequireAuth and RequireGuest gate routes on it.
//   - RequestID assigns an X-Request-ID and exposes it through GetRequestID.
//   - Logging writes one access log line per request.
//   - SecurityHeaders adds browser hardening headers.
//   - BodyLimit caps request bodies.
//
// All middleware is generic over the application context:
//
//	r := router.New[*postboard.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*postboard.Context](),
//			middleware.Logging[*postboard.Context](log),
//			middleware.SecurityHeaders[*postboard.Context](),
//			middleware.Session[*postboard.Context](transport),
//		),
//	)
//
// RequestIDExtractor and UserIDExtractor plug into logger.WithContextExtractors
// so records logged with a request context carry both IDs.
package middleware
