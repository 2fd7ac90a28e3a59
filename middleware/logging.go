package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/postboard/core/handler"
	"github.com/dmitrymomot/postboard/core/logger"
)

// LoggingConfig configures the access log middleware.
type LoggingConfig struct {
	// Skip defines a function to skip logging for specific requests.
	Skip func(ctx handler.Context) bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// SlowRequestThreshold logs slower requests at warn level (default: 5s).
	SlowRequestThreshold time.Duration
}

// Logging logs one line per request with the given logger.
func Logging[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig logs method, path, status, size and duration once the
// response is written. 5xx are logged at error level; 4xx, slow requests and
// errors left to the router's error handler at warn.
// Headers and bodies are never logged; they carry session cookies and passwords.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
				err := resp(rw, r)
				duration := time.Since(start)

				attrs := []slog.Attr{
					logger.Component("http"),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(rw.status),
					slog.Int("bytes_out", rw.size),
					logger.Duration(duration),
					logger.ClientIP(r.RemoteAddr),
				}

				level := slog.LevelInfo
				switch {
				case rw.status >= http.StatusInternalServerError:
					level = slog.LevelError
				case err != nil:
					// Rendered afterwards by the router's error handler.
					level = slog.LevelWarn
					attrs = append(attrs, logger.Error(err))
				case rw.status >= http.StatusBadRequest:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(ctx, level, "http request", attrs...)
				return err
			}
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.status = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
