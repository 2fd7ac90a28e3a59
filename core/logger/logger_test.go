package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/core/logger"
)

type ctxKey struct{}

func TestNewProductionJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("postboard"),
		logger.WithOutput(&buf),
		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
			id, ok := ctx.Value(ctxKey{}).(string)
			return logger.RequestID(id), ok
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	log.InfoContext(ctx, "hello", logger.Component("test"), logger.Error(nil), logger.UserID(""))
	log.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "postboard", rec["service"])
	assert.Equal(t, "test", rec["component"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.NotContains(t, rec, "error")
	assert.NotContains(t, rec, "user_id")
}

func TestWithLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithDevelopment("svc"), logger.WithLevel(slog.LevelWarn), logger.WithOutput(&buf))
	log.Info("dropped")
	assert.Empty(t, buf.String())

	log.Warn("kept", logger.Error(errors.New("boom")))
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestErrors(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	attr := logger.Errors(nil, errors.New("a"))
	assert.Equal(t, "errors", attr.Key)
	assert.Len(t, attr.Value.Group(), 1)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("chatty"))
}
