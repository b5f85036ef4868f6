package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/storefront/backend/internal/domain/basket"
)

// InMemoryBasketStore implements basket.Store on a mutex-guarded map.
// This is suitable for single-instance deployments and testing. Baskets
// are stored as encoded JSON so callers get the same copy semantics as
// the Redis store: a stored basket cannot be mutated through a retained
// pointer.
type InMemoryBasketStore struct {
	mu      sync.RWMutex
	baskets map[string][]byte
}

// NewInMemoryBasketStore creates a new in-memory basket store
func NewInMemoryBasketStore() *InMemoryBasketStore {
	return &InMemoryBasketStore{
		baskets: make(map[string][]byte),
	}
}

// Get returns the basket for an id, or (nil, nil) when no basket exists.
func (s *InMemoryBasketStore) Get(ctx context.Context, id string) (*basket.CustomerBasket, error) {
	s.mu.RLock()
	data, exists := s.baskets[id]
	s.mu.RUnlock()

	if !exists {
		return nil, nil
	}

	var b basket.CustomerBasket
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Upsert creates or replaces the basket and returns the stored value.
func (s *InMemoryBasketStore) Upsert(ctx context.Context, b *basket.CustomerBasket) (*basket.CustomerBasket, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.baskets[b.ID] = data
	s.mu.Unlock()

	return s.Get(ctx, b.ID)
}

// Delete removes the basket, reporting whether one existed.
func (s *InMemoryBasketStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.baskets[id]
	delete(s.baskets, id)
	return exists, nil
}

// Size returns the number of stored baskets (for testing/monitoring)
func (s *InMemoryBasketStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.baskets)
}

// Ensure InMemoryBasketStore implements basket.Store
var _ basket.Store = (*InMemoryBasketStore)(nil)
