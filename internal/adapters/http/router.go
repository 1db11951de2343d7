// Package http is the inbound HTTP adapter: routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/storefront-shops/internal/adapters/http/handlers"
)

// NewRouter registers the health, page and API routes. Middleware is
// applied globally in the order given.
func NewRouter(
	shopsHandler *handlers.ShopsHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Get("/shops", shopsHandler.Page)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/shops", shopsHandler.List)
	})

	return r
}
