package domain

// Product is a catalog entry. Identity is the ID; instances are immutable
// after the catalog is seeded at startup.
type Product struct {
	ID    int
	Name  string
	Price float64
}
