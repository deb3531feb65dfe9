// Package sqlite provides a SQLite-backed implementation of
// orderlog.Repository.
//
// WAL mode is enabled on Open so readers never block writers and vice versa;
// the handler goroutine writes while an operator query may be reading.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ecomdemo/shop/internal/order-service/orderlog"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps Docker (Alpine) builds simple.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. The table is append-only: each
// row is an immutable event in an order's lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS order_events (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Business identifier ("ORD-N"). Not UNIQUE: one row per event.
    order_id    TEXT NOT NULL,

    -- Lifecycle event kind, e.g. "CREATED".
    kind        TEXT NOT NULL,

    -- JSON summary of the order at event time.
    payload     TEXT,

    -- Request correlation ID active when the event was written.
    request_id  TEXT NOT NULL DEFAULT '',

    -- W3C trace_id (32 hex chars) from the active OTel span.
    trace_id    TEXT NOT NULL DEFAULT '',

    -- W3C span_id (16 hex chars).
    span_id     TEXT NOT NULL DEFAULT '',

    -- RFC3339 timestamp stored as TEXT (SQLite idiom).
    created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_order_events_order_id ON order_events(order_id, created_at);
CREATE INDEX IF NOT EXISTS idx_order_events_trace_id ON order_events(trace_id);
`

// Repository is the SQLite implementation of orderlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	repo, err := sqlite.Open("./data/orders.db")
func Open(path string) (*Repository, error) {
	// The pure-Go driver takes _pragma query parameters. WAL enables
	// concurrent readers; busy_timeout waits for locks instead of failing.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new order event. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, ev *orderlog.Event) error {
	const q = `
		INSERT INTO order_events
			(order_id, kind, payload, request_id, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		ev.OrderID,
		string(ev.Kind),
		nullableString(ev.Payload),
		ev.RequestID,
		ev.TraceID,
		ev.SpanID,
		ev.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save event for %q: %w", ev.OrderID, err)
	}
	return nil
}

// GetLatest returns the most recent event for an order ID.
func (r *Repository) GetLatest(ctx context.Context, orderID string) (*orderlog.Event, error) {
	const q = `
		SELECT order_id, kind, COALESCE(payload,''), request_id, trace_id, span_id, created_at
		FROM   order_events
		WHERE  order_id = ?
		ORDER  BY created_at DESC, id DESC
		LIMIT  1`

	row := r.db.QueryRowContext(ctx, q, orderID)

	var ev orderlog.Event
	var createdAt string
	err := row.Scan(&ev.OrderID, &ev.Kind, &ev.Payload, &ev.RequestID, &ev.TraceID, &ev.SpanID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: no events for order %q", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", orderID, err)
	}

	ev.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse time %q: %w", createdAt, err)
	}

	return &ev, nil
}

// nullableString returns nil for empty strings so SQLite stores NULL instead
// of an empty TEXT.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
