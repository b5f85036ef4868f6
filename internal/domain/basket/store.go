package basket

import "context"

// Store is the external key-value cache that holds customer baskets.
// It is not transactional with the relational store: mutations here are
// independent I/O, and concurrent upserts to the same id are last-write-wins.
type Store interface {
	// Get returns the basket for an id, or (nil, nil) when absent.
	Get(ctx context.Context, id string) (*CustomerBasket, error)

	// Upsert creates or replaces the basket and returns the stored value.
	Upsert(ctx context.Context, b *CustomerBasket) (*CustomerBasket, error)

	// Delete removes the basket, reporting whether one existed.
	Delete(ctx context.Context, id string) (bool, error)
}
