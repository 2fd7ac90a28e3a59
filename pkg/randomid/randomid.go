package randomid

import (
	"crypto/rand"
	"encoding/base32"
	"errors"
	"fmt"
	"io"
)

const (
	// IDBytes is the amount of entropy in identifiers for users, posts and comments (120 bits).
	IDBytes = 15
	// TokenBytes is the amount of entropy in session tokens (160 bits).
	TokenBytes = 20
)

// ErrEntropyExhausted is returned when the operating system random source fails.
var ErrEntropyExhausted = errors.New("randomid: random source unavailable")

// encoding is lower-case base32 (a-z, 2-7) without padding.
var encoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// source is swapped in tests.
var source io.Reader = rand.Reader

// Generate returns n random bytes encoded as lower-case unpadded base32.
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("randomid: invalid length %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(source, buf); err != nil {
		return "", errors.Join(ErrEntropyExhausted, err)
	}
	return encoding.EncodeToString(buf), nil
}

// New returns a 120-bit identifier. It panics if the random source fails;
// there is no safe fallback for identifier generation.
func New() string {
	return must(Generate(IDBytes))
}

// Token returns a 160-bit session token. It panics if the random source fails.
func Token() string {
	return must(Generate(TokenBytes))
}

func must(s string, err error) string {
	if err != nil {
		panic(err)
	}
	return s
}
