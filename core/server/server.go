package server

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/postboard/core/logger"
)

// Server wraps http.Server with graceful shutdown.
type Server struct {
	mu        sync.Mutex
	addr      string
	srv       *http.Server
	listener  net.Listener
	log       *slog.Logger
	shutdown  time.Duration
	tlsConfig *tls.Config

	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
}

// New creates a Server listening on addr.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		log:            logger.Nop(),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the bound address once the server is listening, or the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Run serves h until ctx is cancelled, then shuts down gracefully.
// The returned function fits errgroup.Group.Go.
func (s *Server) Run(ctx context.Context, h http.Handler) func() error {
	return func() error {
		if err := s.listen(h); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			s.log.InfoContext(ctx, "server started", logger.Component("server"), slog.String("addr", s.Addr()))
			var err error
			if s.tlsConfig != nil {
				err = s.srv.ServeTLS(s.listener, "", "")
			} else {
				err = s.srv.Serve(s.listener)
			}
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			errCh <- err
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return errors.Join(ErrServe, err)
			}
			return nil
		case <-ctx.Done():
		}

		if err := s.stop(); err != nil {
			return err
		}
		return <-errCh
	}
}

func (s *Server) listen(h http.Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Join(ErrListen, err)
	}

	s.listener = ln
	s.srv = &http.Server{
		Handler:           h,
		ReadTimeout:       s.readTimeout,
		ReadHeaderTimeout: s.readTimeout,
		WriteTimeout:      s.writeTimeout,
		IdleTimeout:       s.idleTimeout,
		MaxHeaderBytes:    s.maxHeaderBytes,
		TLSConfig:         s.tlsConfig,
	}
	return nil
}

func (s *Server) stop() error {
	s.log.Info("shutting down server", logger.Component("server"), slog.Duration("timeout", s.shutdown))

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.log.Error("server shutdown failed", logger.Component("server"), logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}

	s.log.Info("server stopped", logger.Component("server"))
	return nil
}
