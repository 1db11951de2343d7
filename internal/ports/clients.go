package ports

import (
	"context"

	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
)

// ShopClient is the client port for the downstream drinks API.
// Implemented by the ACL adapter; called by the shop fetcher.
type ShopClient interface {
	// ListShops issues exactly one request for the shops matching filter,
	// built by shop.RequestPath. A zero Filter lists every shop sorted by
	// name. Every failure wraps domain.ErrFetchFailed.
	ListShops(ctx context.Context, filter shop.Filter) ([]shop.Shop, error)
}
