package dto

import (
	"github.com/jsamuelsen11/storefront-shops/internal/domain"
	"github.com/jsamuelsen11/storefront-shops/internal/domain/shop"
)

// ShopsResponse is the JSON rendering of a view snapshot. A failed fetch is
// reported in Error with the stable message of domain.ErrFetchFailed; the
// cause is only logged. While Loading, clients poll with View to observe the
// same fetch.
type ShopsResponse struct {
	View    string      `json:"view"`
	Loading bool        `json:"loading"`
	Loaded  bool        `json:"loaded"`
	Count   int         `json:"count"`
	Shops   []shop.Shop `json:"shops"`
	Error   string      `json:"error"`
}

// ToShopsResponse converts snap. Shops is never null.
func ToShopsResponse(snap shop.Snapshot) ShopsResponse {
	s := snap.State
	shops := s.Results
	if shops == nil {
		shops = []shop.Shop{}
	}

	resp := ShopsResponse{
		View:    snap.ViewID,
		Loading: s.IsLoading,
		Loaded:  s.Loaded,
		Count:   len(shops),
		Shops:   shops,
	}
	if s.Failed() {
		resp.Error = domain.ErrFetchFailed.Error()
	}
	return resp
}
