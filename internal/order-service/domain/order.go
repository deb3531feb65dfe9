package domain

import (
	"errors"
	"fmt"

	"github.com/ecomdemo/shop/internal/pkg/jsonwire"
)

// ItemRequest is a line item as submitted by the client: product reference
// and quantity only. It exists only during request processing.
type ItemRequest struct {
	ProductID int
	Quantity  int
}

// Item is an enriched line item, created only after a successful catalog
// lookup. Immutable once constructed.
type Item struct {
	ProductID int
	Name      string
	UnitPrice float64
	Quantity  int
	Subtotal  float64
}

// NewItem enriches a request item with catalog data and computes its rounded
// subtotal.
func NewItem(req ItemRequest, p Product) Item {
	return Item{
		ProductID: req.ProductID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  req.Quantity,
		Subtotal:  jsonwire.Round2(p.Price * float64(req.Quantity)),
	}
}

// Order is a completed order. Items is never empty and Total always equals
// the rounded sum of the item subtotals at creation time. Orders are
// create-once, read-many, never mutated or deleted.
type Order struct {
	OrderID string
	Items   []Item
	Total   float64
}

// Product is the catalog view the order side needs: name and unit price for
// a known product id.
type Product struct {
	ID    int
	Name  string
	Price float64
}

// ErrNoItems rejects an order request with a nil or empty items list.
// The message is the exact wire-visible error text.
var ErrNoItems = errors.New("Order must contain at least one item")

// ErrOrderNotFound is returned when an order id has never been issued.
var ErrOrderNotFound = errors.New("Order not found")

// ErrUpstream marks a catalog dependency failure: unreachable, timed out, or
// any non-success, non-404 status. Callers must not distinguish further.
var ErrUpstream = errors.New("product service unavailable")

// ProductNotFoundError reports a referenced product id the catalog does not
// know. It is a client fault, not an upstream one.
type ProductNotFoundError struct {
	ProductID int
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product not found: %d", e.ProductID)
}
