package health

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/postboard/core/handler"
	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/core/response"
)

// DefaultTimeout bounds a readiness probe when no deadline is set upstream.
const DefaultTimeout = 3 * time.Second

// Check is a named dependency probe.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// Liveness reports that the process is running. It has no dependency checks.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent returns 204 without a body.
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}

// Readiness runs all checks concurrently and returns "READY" when every one
// succeeds, or 503 when any fails. Failures are logged with the check name.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		probeCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(probeCtx)
		for _, c := range checks {
			g.Go(func() error {
				if err := c.Probe(gctx); err != nil {
					log.ErrorContext(ctx, "readiness check failed",
						logger.Component("health"),
						slog.String("check", c.Name),
						logger.Error(err),
					)
					return err
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return response.Error(response.ErrServiceUnavailable)
		}

		return response.String("READY")
	}
}
