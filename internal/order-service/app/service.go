// Package app holds the order-creation pipeline: request validation,
// per-item catalog enrichment, monetary aggregation, and persistence.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ecomdemo/shop/internal/order-service/core/ports"
	"github.com/ecomdemo/shop/internal/order-service/domain"
	"github.com/ecomdemo/shop/internal/order-service/orderlog"
	"github.com/ecomdemo/shop/internal/order-service/store"
	"github.com/ecomdemo/shop/internal/pkg/jsonwire"
)

// OrderService coordinates order creation and retrieval.
type OrderService struct {
	lookup ports.ProductLookup
	orders *store.Store
	events orderlog.Repository // nil-safe: event logging skipped if nil
}

// NewOrderService wires the pipeline. events may be nil — order creation then
// proceeds without an audit trail.
func NewOrderService(lookup ports.ProductLookup, orders *store.Store, events orderlog.Repository) *OrderService {
	return &OrderService{
		lookup: lookup,
		orders: orders,
		events: events,
	}
}

// CreateOrder validates the request, resolves every item against the catalog
// strictly in input order, computes totals, and persists the result.
//
// All-or-nothing: the first lookup failure aborts the whole operation with
// nothing persisted and no identifier consumed. Each subtotal is rounded to
// two decimals first, then the sum of the already-rounded subtotals is
// rounded again — the total must be reproduced exactly this way.
func (s *OrderService) CreateOrder(ctx context.Context, items []domain.ItemRequest) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrNoItems
	}

	enriched := make([]domain.Item, 0, len(items))
	var total float64
	for _, req := range items {
		product, err := s.lookup.Lookup(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		item := domain.NewItem(req, product)
		enriched = append(enriched, item)
		total += item.Subtotal
	}

	order := &domain.Order{
		OrderID: s.orders.NextID(),
		Items:   enriched,
		Total:   jsonwire.Round2(total),
	}
	s.orders.Put(order)
	s.logCreated(ctx, order)

	slog.InfoContext(ctx, "order created",
		"order_id", order.OrderID,
		"items", len(order.Items),
		"total", order.Total,
	)
	return order, nil
}

// GetOrder retrieves a previously created order. Pure lookup, no side
// effects.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, ok := s.orders.Get(orderID)
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// logCreated appends a CREATED event to the order log. Failures are logged,
// never surfaced: the log is observability, not the system of record.
func (s *OrderService) logCreated(ctx context.Context, order *domain.Order) {
	if s.events == nil {
		return
	}
	payload := fmt.Sprintf(`{"orderId":"%s","itemCount":%d,"total":%s}`,
		jsonwire.EscapeString(order.OrderID), len(order.Items), jsonwire.FormatPrice(order.Total))

	ev := orderlog.NewEvent(ctx, order.OrderID, orderlog.KindCreated, payload)
	if err := s.events.Save(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "failed to record order event", "order_id", order.OrderID, "error", err)
	}
}
