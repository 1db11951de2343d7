package ports

import (
	"context"

	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
)

// ShopService is the service port for browsing shops.
// Implemented by the application layer; called by inbound adapters.
type ShopService interface {
	// Browse observes the view named viewID, re-filtering it to filter, or
	// mounts a new view when viewID is empty or no longer mounted. It
	// returns once the view's fetch settles or the render wait elapses; in
	// the latter case the fetch keeps running for the next Browse of the
	// same view. A failed fetch is reported in the snapshot's State.Err.
	// The error is reserved for the caller's own context ending before
	// anything could be observed.
	Browse(ctx context.Context, viewID string, filter shop.Filter) (shop.Snapshot, error)

	// ErrorPolicy reports how a failed settle is to be rendered.
	ErrorPolicy() shop.ErrorPolicy
}
