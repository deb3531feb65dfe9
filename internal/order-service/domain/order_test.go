package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemComputesRoundedSubtotal(t *testing.T) {
	item := NewItem(
		ItemRequest{ProductID: 1, Quantity: 2},
		Product{ID: 1, Name: "Laptop", Price: 999.99},
	)

	assert.Equal(t, 1, item.ProductID)
	assert.Equal(t, "Laptop", item.Name)
	assert.Equal(t, 2, item.Quantity)
	assert.InDelta(t, 999.99, item.UnitPrice, 1e-9)
	assert.InDelta(t, 1999.98, item.Subtotal, 1e-9)
}

func TestProductNotFoundErrorMessage(t *testing.T) {
	err := &ProductNotFoundError{ProductID: 999}
	assert.Equal(t, "Product not found: 999", err.Error())
}
