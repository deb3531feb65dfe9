package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomdemo/shop/internal/order-service/domain"
	"github.com/ecomdemo/shop/internal/order-service/orderlog"
	"github.com/ecomdemo/shop/internal/order-service/store"
)

// fakeLookup substitutes the catalog without a network call.
type fakeLookup struct {
	mu       sync.Mutex
	products map[int]domain.Product
	calls    []int
	err      error
}

func (f *fakeLookup) Lookup(ctx context.Context, productID int) (domain.Product, error) {
	f.mu.Lock()
	f.calls = append(f.calls, productID)
	f.mu.Unlock()

	if f.err != nil {
		return domain.Product{}, f.err
	}
	p, ok := f.products[productID]
	if !ok {
		return domain.Product{}, &domain.ProductNotFoundError{ProductID: productID}
	}
	return p, nil
}

// fakeEventLog captures order events in memory.
type fakeEventLog struct {
	mu     sync.Mutex
	events []*orderlog.Event
	err    error
}

func (f *fakeEventLog) Save(ctx context.Context, ev *orderlog.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	return nil
}

func (f *fakeEventLog) GetLatest(ctx context.Context, orderID string) (*orderlog.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].OrderID == orderID {
			return f.events[i], nil
		}
	}
	return nil, errors.New("no events")
}

func demoCatalog() *fakeLookup {
	return &fakeLookup{products: map[int]domain.Product{
		1: {ID: 1, Name: "Laptop", Price: 999.99},
		2: {ID: 2, Name: "Mouse", Price: 24.99},
		3: {ID: 3, Name: "Keyboard", Price: 74.99},
	}}
}

func TestCreateOrderTotals(t *testing.T) {
	lookup := demoCatalog()
	svc := NewOrderService(lookup, store.New(), nil)

	order, err := svc.CreateOrder(context.Background(), []domain.ItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 3, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD-1", order.OrderID)
	require.Len(t, order.Items, 2)

	assert.Equal(t, "Laptop", order.Items[0].Name)
	assert.InDelta(t, 1999.98, order.Items[0].Subtotal, 1e-9)
	assert.Equal(t, "Keyboard", order.Items[1].Name)
	assert.InDelta(t, 74.99, order.Items[1].Subtotal, 1e-9)
	assert.InDelta(t, 2074.97, order.Total, 1e-9)

	// Items resolved strictly in input order.
	assert.Equal(t, []int{1, 3}, lookup.calls)
}

func TestCreateOrderTwoStageRounding(t *testing.T) {
	// Each subtotal rounds 0.335 → 0.34 before summation. Summing first and
	// rounding once would give 1.00 instead of 1.02.
	lookup := &fakeLookup{products: map[int]domain.Product{
		7: {ID: 7, Name: "Washer", Price: 0.335},
	}}
	svc := NewOrderService(lookup, store.New(), nil)

	order, err := svc.CreateOrder(context.Background(), []domain.ItemRequest{
		{ProductID: 7, Quantity: 1},
		{ProductID: 7, Quantity: 1},
		{ProductID: 7, Quantity: 1},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.02, order.Total, 1e-9)
}

func TestCreateOrderEmptyItems(t *testing.T) {
	svc := NewOrderService(demoCatalog(), store.New(), nil)

	_, err := svc.CreateOrder(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrNoItems)

	_, err = svc.CreateOrder(context.Background(), []domain.ItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNoItems)
}

func TestCreateOrderUnknownProductPersistsNothing(t *testing.T) {
	svc := NewOrderService(demoCatalog(), store.New(), nil)

	_, err := svc.CreateOrder(context.Background(), []domain.ItemRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 999, Quantity: 1},
	})

	var nf *domain.ProductNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 999, nf.ProductID)

	// No partial order, no identifier consumed.
	_, err = svc.GetOrder(context.Background(), "ORD-1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestCreateOrderUpstreamFailure(t *testing.T) {
	lookup := &fakeLookup{err: fmt.Errorf("%w: connection refused", domain.ErrUpstream)}
	svc := NewOrderService(lookup, store.New(), nil)

	_, err := svc.CreateOrder(context.Background(), []domain.ItemRequest{{ProductID: 1, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = svc.GetOrder(context.Background(), "ORD-1")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetOrderReturnsCreatedOrder(t *testing.T) {
	svc := NewOrderService(demoCatalog(), store.New(), nil)

	created, err := svc.CreateOrder(context.Background(), []domain.ItemRequest{{ProductID: 2, Quantity: 3}})
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), created.OrderID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	svc := NewOrderService(demoCatalog(), store.New(), nil)

	const n = 50
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			order, err := svc.CreateOrder(context.Background(), []domain.ItemRequest{{ProductID: 1, Quantity: 1}})
			if err == nil {
				ids <- order.OrderID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestCreateOrderRecordsEvent(t *testing.T) {
	events := &fakeEventLog{}
	svc := NewOrderService(demoCatalog(), store.New(), events)

	order, err := svc.CreateOrder(context.Background(), []domain.ItemRequest{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)

	ev, err := events.GetLatest(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, orderlog.KindCreated, ev.Kind)
	assert.Contains(t, ev.Payload, order.OrderID)
	assert.Contains(t, ev.Payload, "1999.98")
}

func TestEventLogFailureDoesNotFailCreation(t *testing.T) {
	events := &fakeEventLog{err: errors.New("disk full")}
	svc := NewOrderService(demoCatalog(), store.New(), events)

	order, err := svc.CreateOrder(context.Background(), []domain.ItemRequest{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", order.OrderID)
}
