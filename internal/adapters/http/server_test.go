package http_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen11/storefront-shops/internal/adapters/http"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/config"
)

func TestNewServer_NilLogger(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1"}, http.NotFoundHandler(), nil)

	assert.NotNil(t, s)
}

func TestServer_Addr(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "0.0.0.0", Port: 8080}, http.NotFoundHandler(), nil)

	assert.Equal(t, "0.0.0.0:8080", s.Addr())
}

func TestServer_StartAndShutdown(t *testing.T) {
	t.Parallel()

	tests := map[string]func(t *testing.T) (context.Context, context.CancelFunc){
		"with deadline": func(t *testing.T) (context.Context, context.CancelFunc) {
			return context.WithTimeout(t.Context(), 5*time.Second)
		},
		"default deadline": func(t *testing.T) (context.Context, context.CancelFunc) {
			return t.Context(), func() {}
		},
	}

	for name, shutdownCtx := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.ServerConfig{
				Host:         "127.0.0.1",
				Port:         0,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 5 * time.Second,
				IdleTimeout:  30 * time.Second,
			}
			s := adapthttp.NewServer(cfg, http.NotFoundHandler(), slog.New(slog.DiscardHandler))

			errCh := make(chan error, 1)
			go func() { errCh <- s.Start() }()

			time.Sleep(50 * time.Millisecond)

			ctx, cancel := shutdownCtx(t)
			defer cancel()
			require.NoError(t, s.Shutdown(ctx))

			select {
			case err := <-errCh:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("Start did not return after Shutdown")
			}
		})
	}
}
