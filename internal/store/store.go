package store

import (
	"sync"

	"github.com/egorv/homebook/internal/pricing"
)

// New builds the cart store and the order history over one shared lock.
// A checkout commit appends the order and clears the cart inside a single
// critical section, so no reader can observe one effect without the other.
func New(pricer *pricing.Normalizer) (*CartStore, *OrderHistory) {
	mu := &sync.RWMutex{}
	cart := &CartStore{mu: mu, pricer: pricer}
	history := &OrderHistory{mu: mu, cart: cart}
	return cart, history
}
