package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/storefront-shops/internal/domain"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
	"github.com/jsamuelsen11/storefront-shops/internal/platform/httpclient"
	"github.com/jsamuelsen11/storefront-shops/internal/ports"
)

var (
	_ ports.ShopClient    = (*ShopClient)(nil)
	_ ports.HealthChecker = (*ShopClient)(nil)
)

// HealthName identifies the drinks API in readiness output.
const HealthName = "drinks-api"

// ShopClient is the outbound adapter for the drinks API listing endpoint.
type ShopClient struct {
	req    *Requester
	path   string
	logger *slog.Logger
}

// NewShopClient creates a ShopClient that sends requests through client to
// path (shop.DefaultEndpoint when empty).
func NewShopClient(client *httpclient.Client, path string, logger *slog.Logger) *ShopClient {
	return &ShopClient{
		req:    NewRequester(client, logger),
		path:   path,
		logger: logger,
	}
}

// ListShops issues one GET for filter and returns the shops verbatim.
// Every failure wraps domain.ErrFetchFailed.
func (c *ShopClient) ListShops(ctx context.Context, filter shop.Filter) ([]shop.Shop, error) {
	path := shop.RequestPath(c.path, filter)

	var dto shopListDTO
	if err := c.req.Get(ctx, path, http.StatusOK, &dto); err != nil {
		return nil, domain.FetchError(err)
	}

	c.logger.DebugContext(ctx, "listed shops",
		slog.String("operation", "ShopClient.ListShops"),
		slog.String("path", path),
		slog.Int("count", len(dto)),
	)
	return toDomainShops(dto), nil
}

// Name implements ports.HealthChecker.
func (c *ShopClient) Name() string {
	return HealthName
}

// HealthCheck reports the drinks API's availability from the circuit
// breaker state; no request is made.
func (c *ShopClient) HealthCheck(_ context.Context) error {
	switch state := c.req.CircuitBreakerState(); state {
	case "closed":
		return nil
	case "half-open":
		return fmt.Errorf("%s: degraded (circuit breaker half-open): %w", HealthName, domain.ErrUnavailable)
	case "open":
		return fmt.Errorf("%s: failing (circuit breaker open): %w", HealthName, domain.ErrUnavailable)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %q", HealthName, state)
	}
}
