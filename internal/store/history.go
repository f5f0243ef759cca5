package store

import (
	"iter"
	"sync"

	"github.com/egorv/homebook/internal/domain"
)

// OrderHistory is the append-only ledger of committed orders. Insertion
// order is commit order; no update or delete operation exists. Orders are
// copied on the way in and on the way out, so nothing can mutate a
// committed order.
type OrderHistory struct {
	mu     *sync.RWMutex
	cart   *CartStore
	orders []domain.Order
}

// Append adds an order to the end of the ledger.
func (h *OrderHistory) Append(order domain.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders = append(h.orders, order.Clone())
}

// CommitOrder appends the order and clears the live cart as one atomic
// step. A concurrent reader sees either both effects or neither.
func (h *OrderHistory) CommitOrder(order domain.Order) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orders = append(h.orders, order.Clone())
	h.cart.items = nil
}

func (h *OrderHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.orders)
}

// All returns a restartable iterator over committed orders in commit
// order. Every pass yields fresh copies.
func (h *OrderHistory) All() iter.Seq[domain.Order] {
	return func(yield func(domain.Order) bool) {
		h.mu.RLock()
		orders := make([]domain.Order, len(h.orders))
		for i, o := range h.orders {
			orders[i] = o.Clone()
		}
		h.mu.RUnlock()

		for _, o := range orders {
			if !yield(o) {
				return
			}
		}
	}
}
