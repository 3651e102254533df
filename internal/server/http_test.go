package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServer_ServesAndStops(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := NewHTTPServer(handler, "127.0.0.1:0")

	done := make(chan error, 1)
	go func() {
		done <- srv.Start(NewPlainListener())
	}()

	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestPlainListener_Listen(t *testing.T) {
	ln, err := NewPlainListener().Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	assert.NotEmpty(t, ln.Addr().String())
}

func TestTLSListener_MissingCertificate(t *testing.T) {
	l := NewTLSListener("does-not-exist.pem", "does-not-exist.key")

	_, err := l.Listen("tcp", "127.0.0.1:0")
	assert.Error(t, err)
}

func TestHTTPServer_Address(t *testing.T) {
	srv := NewHTTPServer(nil, ":8080")
	assert.Equal(t, ":8080", srv.Address())
}
