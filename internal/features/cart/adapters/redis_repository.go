package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"techstore-api/internal/core/cache"
	"techstore-api/internal/features/cart/domain"
)

const cartKeyPrefix = "cart:"

// RedisCartRepository implements ports.Repository using the cache port.
// Each session's cart is one JSON value under "cart:<session>", refreshed
// with the configured TTL on every save so active carts never expire.
type RedisCartRepository struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisCartRepository creates a new RedisCartRepository.
func NewRedisCartRepository(c cache.Cache, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{
		cache: c,
		ttl:   ttl,
	}
}

// Get loads a session's cart. Missing keys yield an empty cart.
func (r *RedisCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.cache.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if strings.Contains(err.Error(), "key not found") {
			return &domain.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to get cart from cache: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

// Save stores a session's cart, resetting its TTL.
func (r *RedisCartRepository) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.cache.Set(ctx, cartKeyPrefix+sessionID, data, r.ttl); err != nil {
		return fmt.Errorf("failed to save cart to cache: %w", err)
	}
	return nil
}

// Delete drops a session's stored cart.
func (r *RedisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cartKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete cart from cache: %w", err)
	}
	return nil
}
