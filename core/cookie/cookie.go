package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"
)

const (
	// MaxCookieSize is the maximum size for a cookie (4KB).
	MaxCookieSize = 4096
	// minSecretLength is the minimum secret length for AES-256.
	minSecretLength = 32
	// flashPrefix namespaces flash cookies to prevent conflicts.
	flashPrefix = "__flash_"
)

// Manager writes and reads HTTP cookies with shared defaults.
// Encrypted values use the first secret; older secrets are still accepted for reading.
type Manager struct {
	secrets  []string
	defaults Options
	maxSize  int
}

// New creates a new cookie manager with the specified secrets and options.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	// Secure defaults
	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{
		secrets:  secrets,
		defaults: defaults,
		maxSize:  MaxCookieSize,
	}, nil
}

// Defaults returns the attributes applied to every cookie.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Set writes a cookie. Per-call options override the manager defaults.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Expires:  options.Expires,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	if size := len(c.String()); size > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: size, Max: m.maxSize}
	}

	http.SetCookie(w, c)
	return nil
}

// Get retrieves a cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires a cookie on the client: empty value, MaxAge -1, Expires at the Unix epoch.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}

// SetEncrypted stores an AES-256-GCM encrypted cookie value.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	encrypted, err := m.encrypt(value)
	if err != nil {
		return err
	}
	return m.Set(w, name, encrypted, opts...)
}

// GetEncrypted retrieves and decrypts a cookie value.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	encrypted, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.decrypt(encrypted)
}

// SetFlash stores a one-time message that's deleted after reading.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return m.SetEncrypted(w, flashPrefix+key, string(data))
}

// GetFlash retrieves and deletes a flash message.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key

	data, err := m.GetEncrypted(r, name)
	if err != nil {
		return err
	}

	// Delete immediately after reading
	m.Delete(w, name)

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("unmarshal flash: %w", err)
	}
	return nil
}

func (m *Manager) encrypt(value string) (string, error) {
	gcm, err := newGCM(m.secrets[0])
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(gcm.Seal(nonce, nonce, []byte(value), nil)), nil
}

func (m *Manager) decrypt(encrypted string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return "", ErrInvalidFormat
	}

	// Try all secrets for key rotation
	for _, secret := range m.secrets {
		gcm, err := newGCM(secret)
		if err != nil || len(raw) < gcm.NonceSize() {
			continue
		}
		nonce, ciphertext := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
		if plaintext, err := gcm.Open(nil, nonce, ciphertext, nil); err == nil {
			return string(plaintext), nil
		}
	}

	return "", ErrDecryptionFailed
}

func newGCM(secret string) (cipher.AEAD, error) {
	block, err := aes.NewCipher([]byte(secret[:minSecretLength]))
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
