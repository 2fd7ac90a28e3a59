package randomid_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/pkg/randomid"
)

var alphabet = regexp.MustCompile(`^[a-z2-7]+$`)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestNew(t *testing.T) {
	t.Parallel()

	id := randomid.New()
	assert.Len(t, id, 24)
	assert.Regexp(t, alphabet, id)
}

func TestToken(t *testing.T) {
	t.Parallel()

	token := randomid.Token()
	assert.Len(t, token, 32)
	assert.Regexp(t, alphabet, token)
}

func TestUniqueness(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 10000)
	for range 10000 {
		token := randomid.Token()
		_, dup := seen[token]
		require.False(t, dup, "duplicate token %s", token)
		seen[token] = struct{}{}
	}
}

func TestGenerate(t *testing.T) {
	t.Run("encodes without padding", func(t *testing.T) {
		s, err := randomid.Generate(1)
		require.NoError(t, err)
		assert.Len(t, s, 2)
		assert.NotContains(t, s, "=")
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		_, err := randomid.Generate(0)
		assert.Error(t, err)
	})

	t.Run("reports exhausted source", func(t *testing.T) {
		restore := randomid.SetSource(failingReader{})
		defer restore()

		_, err := randomid.Generate(randomid.TokenBytes)
		assert.ErrorIs(t, err, randomid.ErrEntropyExhausted)
	})

	t.Run("panics on exhausted source", func(t *testing.T) {
		restore := randomid.SetSource(failingReader{})
		defer restore()

		assert.Panics(t, func() { randomid.Token() })
		assert.Panics(t, func() { randomid.New() })
	})
}
