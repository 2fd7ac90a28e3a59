package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/core/session"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := session.DefaultConfig()
	assert.Equal(t, 30*24*time.Hour, cfg.TTL)
	assert.Equal(t, 15*24*time.Hour, cfg.RenewalWindow)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("uses configured ttl", func(t *testing.T) {
		t.Parallel()

		mgr, err := session.NewFromConfig(session.Config{TTL: 2 * time.Hour, RenewalWindow: time.Hour}, &mockStore{})
		require.NoError(t, err)
		assert.Equal(t, 2*time.Hour, mgr.TTL())
	})

	t.Run("options override config", func(t *testing.T) {
		t.Parallel()

		mgr, err := session.NewFromConfig(session.DefaultConfig(), &mockStore{}, session.WithTTL(48*time.Hour), session.WithRenewalWindow(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 48*time.Hour, mgr.TTL())
	})

	t.Run("ttl override below configured window", func(t *testing.T) {
		t.Parallel()

		_, err := session.NewFromConfig(session.DefaultConfig(), &mockStore{}, session.WithTTL(48*time.Hour))
		assert.ErrorIs(t, err, session.ErrInvalidConfig)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		_, err := session.NewFromConfig(session.Config{TTL: time.Hour, RenewalWindow: 2 * time.Hour}, &mockStore{})
		assert.ErrorIs(t, err, session.ErrInvalidConfig)
	})
}
