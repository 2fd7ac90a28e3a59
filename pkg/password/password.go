package password

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// Argon2id deployment constants. Hash and Verify use the same values and
// stored hashes with other parameters never verify.
const (
	Memory      = 19456 // KiB
	Iterations  = 2
	Parallelism = 1
	KeyLength   = 32
	SaltLength  = 16
)

var (
	// ErrSaltGeneration is returned when the random source cannot produce a salt.
	ErrSaltGeneration = errors.New("password: failed to generate salt")
	// ErrMalformedHash is returned by Decode for strings that are not Argon2id PHC hashes.
	ErrMalformedHash = errors.New("password: malformed hash")
)

// Hasher computes and verifies Argon2id hashes.
// Concurrent computations are capped so that memory use stays bounded under load.
type Hasher struct {
	sem *semaphore.Weighted
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithMaxConcurrent limits how many hashes are computed at the same time.
func WithMaxConcurrent(n int) Option {
	return func(h *Hasher) {
		if n > 0 {
			h.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

// NewHasher creates a Hasher. By default up to 2*GOMAXPROCS hashes run concurrently.
func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{sem: semaphore.NewWeighted(int64(2 * runtime.GOMAXPROCS(0)))}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns the PHC-encoded Argon2id hash of password.
// It returns ctx.Err() if the context is done before a computation slot is free.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Join(ErrSaltGeneration, err)
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, Iterations, Memory, Parallelism, KeyLength)
	h.sem.Release(1)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, Memory, Iterations, Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encodedHash.
// Malformed hashes, foreign parameters and an aborted context all report false.
func (h *Hasher) Verify(ctx context.Context, encodedHash, password string) bool {
	salt, key, err := Decode(encodedHash)
	if err != nil {
		return false
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	candidate := argon2.IDKey([]byte(password), salt, Iterations, Memory, Parallelism, KeyLength)
	h.sem.Release(1)

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// Decode parses a PHC string produced by Hash and returns its salt and key.
func Decode(encoded string) (salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, ErrMalformedHash
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return nil, nil, ErrMalformedHash
	}
	if memory != Memory || iterations != Iterations || parallelism != Parallelism {
		return nil, nil, fmt.Errorf("%w: unexpected parameters m=%d,t=%d,p=%d", ErrMalformedHash, memory, iterations, parallelism)
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, ErrMalformedHash
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(key) != KeyLength {
		return nil, nil, ErrMalformedHash
	}

	return salt, key, nil
}
