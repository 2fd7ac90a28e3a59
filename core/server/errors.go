package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server: address is required")
	ErrServerAlreadyRunning = errors.New("server: already running")
	ErrListen               = errors.New("server: listen failed")
	ErrServe                = errors.New("server: serve failed")
	ErrShutdown             = errors.New("server: shutdown failed")
	ErrLoadCertificate      = errors.New("server: failed to load certificate")
)
