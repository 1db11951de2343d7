package acl

import (
	"encoding/json"

	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
)

// shopListDTO is the listing payload: a JSON array of shop objects whose
// fields this service does not interpret.
type shopListDTO []json.RawMessage

// toDomainShops keeps each element verbatim. A null payload becomes an
// empty, initialized list.
func toDomainShops(dto shopListDTO) []shop.Shop {
	shops := make([]shop.Shop, 0, len(dto))
	for _, raw := range dto {
		shops = append(shops, shop.Shop(raw))
	}
	return shops
}
