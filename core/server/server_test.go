package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/core/server"
)

func TestRunServesUntilCancelled(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0", server.WithShutdownTimeout(time.Second))
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h)() }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get("http://" + srv.Addr() + "/")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunListenFailure(t *testing.T) {
	t.Parallel()

	err := server.New("256.0.0.1:bad").Run(context.Background(), http.NotFoundHandler())()
	assert.ErrorIs(t, err, server.ErrListen)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	_, err := server.NewFromConfig(server.Config{})
	assert.ErrorIs(t, err, server.ErrMissingAddress)

	srv, err := server.NewFromConfig(server.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ":8080", srv.Addr())

	_, err = server.NewFromConfig(server.Config{Addr: ":0", TLSCertFile: "missing.pem", TLSKeyFile: "missing.key"})
	assert.ErrorIs(t, err, server.ErrLoadCertificate)
}
