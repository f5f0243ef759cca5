package store

import (
	"errors"
	"sync"

	"github.com/egorv/homebook/internal/domain"
	"github.com/egorv/homebook/internal/pricing"
)

var ErrOutOfRange = errors.New("cart index out of range")

// CartStore owns the live cart sequence and is its sole mutator. The
// sequence keeps insertion order; removal is by position, not identity,
// because identical services may appear more than once.
type CartStore struct {
	mu     *sync.RWMutex
	pricer *pricing.Normalizer
	items  []domain.CartItem
}

// Add appends an item to the end of the cart. It always succeeds.
func (s *CartStore) Add(item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item.Clone())
}

// RemoveAt removes the element at the given position. Subsequent elements
// shift down by one. Returns ErrOutOfRange without mutating the cart when
// the index is not within [0, len).
func (s *CartStore) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return ErrOutOfRange
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

// Clear empties the cart. Idempotent.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *CartStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns an independent copy of the current sequence. The
// checkout pipeline uses it to freeze cart contents into an order.
func (s *CartStore) Snapshot() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneItems(s.items)
}

// Total returns the normalized sum of all item prices.
func (s *CartStore) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pricer.Sum(s.items)
}
