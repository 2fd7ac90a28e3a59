package middleware

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/postboard/core/handler"
)

// SecurityHeadersConfig lists headers added to every response. Empty values are omitted.
type SecurityHeadersConfig struct {
	ContentTypeOptions      string
	FrameOptions            string
	ReferrerPolicy          string
	ContentSecurityPolicy   string
	StrictTransportSecurity string
	CustomHeaders           map[string]string
	// IsDevelopment drops HSTS so local plain-HTTP runs keep working.
	IsDevelopment bool
}

// DefaultSecurityHeaders suits server-rendered pages with inline-free templates
// and same-origin form posts.
var DefaultSecurityHeaders = SecurityHeadersConfig{
	ContentTypeOptions:      "nosniff",
	FrameOptions:            "DENY",
	ReferrerPolicy:          "strict-origin-when-cross-origin",
	ContentSecurityPolicy:   "default-src 'self'; frame-ancestors 'none'; form-action 'self'; base-uri 'self'",
	StrictTransportSecurity: "max-age=31536000; includeSubDomains",
}

// SecurityHeaders adds DefaultSecurityHeaders.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](DefaultSecurityHeaders)
}

// SecurityHeadersWithConfig adds the configured headers to every response.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := map[string]string{}
	for k, v := range map[string]string{
		"X-Content-Type-Options":    cfg.ContentTypeOptions,
		"X-Frame-Options":           cfg.FrameOptions,
		"Referrer-Policy":           cfg.ReferrerPolicy,
		"Content-Security-Policy":   cfg.ContentSecurityPolicy,
		"Strict-Transport-Security": cfg.StrictTransportSecurity,
	} {
		if v != "" {
			headers[k] = v
		}
	}
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			resp := next(ctx)
			return func(w http.ResponseWriter, r *http.Request) error {
				for k, v := range headers {
					w.Header().Set(k, v)
				}
				return resp(w, r)
			}
		}
	}
}
