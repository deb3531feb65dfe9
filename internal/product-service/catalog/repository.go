// Package catalog holds the in-memory product set the service is seeded with
// at startup. The set is read-only afterwards, so concurrent reads need no
// synchronization.
package catalog

import "github.com/ecomdemo/shop/internal/product-service/domain"

// Repository is the seeded in-memory product store.
type Repository struct {
	byID  map[int]domain.Product
	order []int
}

// NewRepository builds the fixed demo catalog.
func NewRepository() *Repository {
	r := &Repository{byID: make(map[int]domain.Product)}
	for _, p := range []domain.Product{
		{ID: 1, Name: "Laptop", Price: 999.99},
		{ID: 2, Name: "Mouse", Price: 24.99},
		{ID: 3, Name: "Keyboard", Price: 74.99},
		{ID: 4, Name: "Monitor", Price: 349.99},
		{ID: 5, Name: "Headphones", Price: 149.99},
	} {
		r.add(p)
	}
	return r
}

func (r *Repository) add(p domain.Product) {
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
}

// All returns every product in insertion order.
func (r *Repository) All() []domain.Product {
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// FindByID returns the product with the given id.
func (r *Repository) FindByID(id int) (domain.Product, bool) {
	p, ok := r.byID[id]
	return p, ok
}
