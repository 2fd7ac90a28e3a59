package redis

import "errors"

// Domain-specific Redis errors for consistent error handling across the application.
// Use errors.Is() to check error types for retry logic and user-facing messages.
var (
	ErrFailedToParseRedisConnString = errors.New("redis: failed to parse connection string")
	ErrRedisNotReady                = errors.New("redis: not ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("redis: empty connection URL")
	ErrHealthcheckFailed            = errors.New("redis: healthcheck failed")
)
