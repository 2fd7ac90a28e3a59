package session

import "errors"

var (
	// ErrInvalid is returned for absent, expired or orphaned sessions.
	// It is the only error callers should translate into "anonymous".
	ErrInvalid = errors.New("session is invalid")
	// ErrNotFound is returned by stores when no session has the requested ID.
	ErrNotFound = errors.New("session not found")
	// ErrUserNotFound is returned by stores when a session's owner no longer exists.
	ErrUserNotFound = errors.New("session owner not found")
	// ErrDuplicateID is returned by stores when a session ID already exists.
	ErrDuplicateID = errors.New("session id already exists")
	// ErrSaveSession is returned when persisting a new session fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrLoadSession is returned when looking up a session fails.
	ErrLoadSession = errors.New("failed to load session")
	// ErrUpdateSession is returned when extending a session fails.
	ErrUpdateSession = errors.New("failed to update session")
	// ErrDeleteSession is returned when deleting a session from the store fails.
	ErrDeleteSession = errors.New("failed to delete session")
	// ErrInvalidConfig is returned when the renewal window is not shorter than the TTL.
	ErrInvalidConfig = errors.New("session renewal window must be positive and shorter than ttl")
)
