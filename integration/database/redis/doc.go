// Package redis connects to Redis with retries and exposes a health probe.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		RetryAttempts: 3,
//		RetryInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	ready := redis.Healthcheck(client)
//
// Both redis:// and rediss:// (TLS) URLs are accepted. Failures wrap
// ErrFailedToParseRedisConnString, ErrRedisNotReady, ErrEmptyConnectionURL
// or ErrHealthcheckFailed.
package redis
