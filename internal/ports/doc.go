// Package ports holds the interfaces that connect the layers: ShopService is
// implemented by the application layer and called by HTTP handlers;
// ShopClient is implemented by the outbound ACL adapter and called by the
// shop fetcher.
package ports
