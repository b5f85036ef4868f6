package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront/backend/internal/domain/basket"
)

// RedisBasketStore implements basket.Store on Redis. Each basket is one
// JSON value keyed by customer id, so updates replace the whole basket
// and concurrent writers are last-write-wins.
type RedisBasketStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// DefaultBasketTTL bounds how long an abandoned basket survives.
const DefaultBasketTTL = 30 * 24 * time.Hour

// NewRedisBasketStore connects to Redis and returns a basket store.
func NewRedisBasketStore(cfg RedisConfig) (*RedisBasketStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBasketStore{
		client:    client,
		keyPrefix: "basket:",
		ttl:       DefaultBasketTTL,
	}, nil
}

// NewRedisBasketStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisBasketStoreWithClient(client *redis.Client, keyPrefix string) *RedisBasketStore {
	if keyPrefix == "" {
		keyPrefix = "basket:"
	}
	return &RedisBasketStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       DefaultBasketTTL,
	}
}

// WithTTL overrides the expiry applied to stored baskets. A zero or
// negative ttl keeps baskets until explicitly deleted.
func (s *RedisBasketStore) WithTTL(ttl time.Duration) *RedisBasketStore {
	if ttl <= 0 {
		ttl = 0
	}
	s.ttl = ttl
	return s
}

// Get returns the basket for an id, or (nil, nil) when no basket exists.
func (s *RedisBasketStore) Get(ctx context.Context, id string) (*basket.CustomerBasket, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read basket %s: %w", id, err)
	}

	var b basket.CustomerBasket
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode basket %s: %w", id, err)
	}
	return &b, nil
}

// Upsert creates or replaces the basket and returns the stored value.
func (s *RedisBasketStore) Upsert(ctx context.Context, b *basket.CustomerBasket) (*basket.CustomerBasket, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode basket %s: %w", b.ID, err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+b.ID, data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to write basket %s: %w", b.ID, err)
	}
	return s.Get(ctx, b.ID)
}

// Delete removes the basket, reporting whether one existed.
func (s *RedisBasketStore) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.client.Del(ctx, s.keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete basket %s: %w", id, err)
	}
	return removed > 0, nil
}

// Close closes the Redis client
func (s *RedisBasketStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisBasketStore) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisBasketStore implements basket.Store
var _ basket.Store = (*RedisBasketStore)(nil)
