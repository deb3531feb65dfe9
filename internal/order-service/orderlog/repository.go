package orderlog

import "context"

// Repository is the port (interface) for persisting order events. The order
// pipeline depends on this abstraction, not on SQLite directly, so the
// implementation can be swapped for Postgres, in-memory (tests), etc.
type Repository interface {
	// Save appends a new event row. The table is an append-only audit log,
	// not an upsert.
	Save(ctx context.Context, ev *Event) error

	// GetLatest returns the most recent event for an order ID.
	GetLatest(ctx context.Context, orderID string) (*Event, error)
}
