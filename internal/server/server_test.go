package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/enlistment/internal/config"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewHTTPServerUsesConfiguredTimeouts(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Port = "8081"
	cfg.Server.ReadTimeout = "3s"
	cfg.Server.WriteTimeout = "4s"

	srv := newHTTPServer(cfg, http.NotFoundHandler())

	assert.Equal(t, ":8081", srv.Addr)
	assert.Equal(t, 3*time.Second, srv.ReadTimeout)
	assert.Equal(t, 4*time.Second, srv.WriteTimeout)
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	addr := freeAddr(t)
	s := &Server{
		http:            &http.Server{Addr: addr, Handler: http.NotFoundHandler()},
		shutdownTimeout: time.Second,
		logger:          zerolog.Nop(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestRunReportsListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	s := &Server{
		http:            &http.Server{Addr: l.Addr().String(), Handler: http.NotFoundHandler()},
		shutdownTimeout: time.Second,
		logger:          zerolog.Nop(),
	}

	err = s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server stopped")
}
