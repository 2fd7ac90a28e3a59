package cookie

import (
	"errors"
	"fmt"
)

var (
	ErrNoSecret         = errors.New("cookie: at least one secret is required")
	ErrSecretTooShort   = errors.New("cookie: secret shorter than 32 characters")
	ErrDecryptionFailed = errors.New("cookie: value cannot be decrypted with any secret")
	ErrCookieNotFound   = errors.New("cookie: not found")
	ErrInvalidFormat    = errors.New("cookie: malformed encrypted value")
)

// ErrCookieTooLarge is returned by Set when the encoded cookie exceeds the size limit.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie: %q is %d bytes, limit is %d", e.Name, e.Size, e.Max)
}
