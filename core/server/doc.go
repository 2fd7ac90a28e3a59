// Package server runs an http.Handler with graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Run returns when ctx is cancelled and in-flight requests have finished,
// or when the listener fails. TLS is enabled when Config names both a
// certificate and a key file.
package server
