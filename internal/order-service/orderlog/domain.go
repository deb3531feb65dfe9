// Package orderlog defines the append-only event trail written alongside the
// in-memory order store.
//
// The log is an observability aid, not the system of record: orders are
// always served from memory, and a failed log write never fails the order.
// Each row correlates a business event with the request ID and the active
// OTel trace, so a row can be joined directly to the distributed trace.
package orderlog

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/ecomdemo/shop/internal/pkg/requestid"
)

// Kind classifies an order lifecycle event.
type Kind string

const (
	// KindCreated is written once when an order is successfully persisted.
	KindCreated Kind = "CREATED"
)

// Event is a single row in the order_events table.
type Event struct {
	// OrderID is the business identifier ("ORD-N") the event belongs to.
	OrderID string

	// Kind is the lifecycle event being recorded.
	Kind Kind

	// Payload is a JSON summary of the order at the time of the event.
	Payload string

	// RequestID is the request correlation ID active when the event was written.
	RequestID string

	// TraceID is the W3C trace ID (32 hex chars) from the active OTel span.
	// Empty when no span is active (e.g. unit tests).
	TraceID string

	// SpanID pinpoints the exact span within the trace (16 hex chars).
	SpanID string

	// CreatedAt is the wall-clock time of the event.
	CreatedAt time.Time
}

// NewEvent builds an Event with correlation IDs extracted from ctx.
func NewEvent(ctx context.Context, orderID string, kind Kind, payload string) *Event {
	ev := &Event{
		OrderID:   orderID,
		Kind:      kind,
		Payload:   payload,
		RequestID: requestid.FromContext(ctx),
		CreatedAt: time.Now().UTC(),
	}

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		ev.TraceID = sc.TraceID().String()
		ev.SpanID = sc.SpanID().String()
	}
	return ev
}
