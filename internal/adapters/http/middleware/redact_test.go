package middleware_test

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/middleware"
)

func TestRedactHeaders(t *testing.T) {
	t.Parallel()

	headers := http.Header{}
	headers.Set("Authorization", "Bearer secret")
	headers.Set("X-Api-Key", "k-123")
	headers.Set("Cookie", "session=abc")
	headers.Set("Accept", "text/html")
	headers.Add("X-Forwarded-For", "10.0.0.1")
	headers.Add("X-Forwarded-For", "10.0.0.2")

	got := middleware.RedactHeaders(headers)

	assert.Equal(t, []slog.Attr{
		slog.String("Accept", "text/html"),
		slog.String("Authorization", "[REDACTED]"),
		slog.String("Cookie", "[REDACTED]"),
		slog.String("X-Api-Key", "[REDACTED]"),
		slog.String("X-Forwarded-For", "10.0.0.1,10.0.0.2"),
	}, got)
}

func TestRedactHeaders_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, middleware.RedactHeaders(http.Header{}))
}
