// Package store keeps completed orders in memory. It is the only owner of
// the orderId→Order mapping; nothing else retains order state after
// persistence.
package store

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/ecomdemo/shop/internal/order-service/domain"
)

// Store is a concurrent-safe, insert-only order map with monotonically
// increasing identifier allocation. No lock is ever held across a network
// call; callers persist fully-built orders only.
type Store struct {
	mu      sync.RWMutex
	orders  map[string]*domain.Order
	counter atomic.Int64
}

func New() *Store {
	return &Store{orders: make(map[string]*domain.Order)}
}

// NextID allocates the next order identifier. IDs are "ORD-" + N with N
// starting at 1; concurrent callers always receive distinct, strictly
// increasing values.
func (s *Store) NextID() string {
	return "ORD-" + strconv.FormatInt(s.counter.Add(1), 10)
}

// Put inserts an order. Inserts only; an id is never reused, so an existing
// entry is never overwritten.
func (s *Store) Put(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.OrderID]; exists {
		return
	}
	s.orders[order.OrderID] = order
}

// Get returns the order for id, or false for unknown ids.
func (s *Store) Get(id string) (*domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	return order, ok
}
