// Package ports declares the capability interfaces the order pipeline depends
// on, so tests can substitute fakes without a real network call or database.
package ports

import (
	"context"

	"github.com/ecomdemo/shop/internal/order-service/domain"
)

// ProductLookup resolves a product id against the catalog service.
//
// Outcomes: the product on success; *domain.ProductNotFoundError when the
// catalog does not know the id; an error wrapping domain.ErrUpstream for any
// transport failure or unexpected status.
type ProductLookup interface {
	Lookup(ctx context.Context, productID int) (domain.Product, error)
}
