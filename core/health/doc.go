// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependencies are available
//   - NoContent: returns 204 for minimal overhead
//
// Usage:
//
//	r.Get("/health/live", health.Liveness[*postboard.Context])
//	r.Get("/health/ready", health.Readiness[*postboard.Context](log,
//		health.Check{Name: "postgres", Probe: pg.Healthcheck(pool)},
//		health.Check{Name: "redis", Probe: redis.Healthcheck(client)},
//	))
package health
