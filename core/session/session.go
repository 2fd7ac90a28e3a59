package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// User is the public projection of an account that a session resolves to.
type User struct {
	ID       string
	Username string
}

// Session is a persisted login. ID is the hash of the client token, never the token itself.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}

// IsExpired reports whether the session is past its expiry at now.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the outcome of resolving a request's token.
// The zero value is the anonymous identity.
type Identity struct {
	User    User
	Session Session
	// Renewed is set when validation extended the session expiry.
	Renewed bool
}

// IsAuthenticated reports whether the identity carries a user.
func (i Identity) IsAuthenticated() bool {
	return i.User.ID != ""
}

// HashToken derives the storage key for a client token: lower-case hex SHA-256.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
