package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"techstore-api/internal/core/cache"
	"techstore-api/internal/features/promos/domain"
)

const promoCacheKey = "storefront_promo"

// RedisPromoRepository implements ports.PromoRepository on the cache port.
// The promo's own duration drives the cache TTL so expiry needs no sweeper.
type RedisPromoRepository struct {
	cache cache.Cache
}

// NewRedisPromoRepository creates a new RedisPromoRepository.
func NewRedisPromoRepository(c cache.Cache) *RedisPromoRepository {
	return &RedisPromoRepository{
		cache: c,
	}
}

// Save stores the promo in the cache.
func (r *RedisPromoRepository) Save(ctx context.Context, promo *domain.Promo) error {
	data, err := json.Marshal(promo)
	if err != nil {
		return fmt.Errorf("failed to marshal promo: %w", err)
	}

	ttl := time.Duration(promo.Duration) * time.Second
	// Duration 0 means permanent; the cache treats TTL 0 as no expiration.

	if err := r.cache.Set(ctx, promoCacheKey, data, ttl); err != nil {
		return fmt.Errorf("failed to save promo to cache: %w", err)
	}

	return nil
}

// Get retrieves the promo from the cache. Returns nil when none is active.
func (r *RedisPromoRepository) Get(ctx context.Context) (*domain.Promo, error) {
	data, err := r.cache.Get(ctx, promoCacheKey)
	if err != nil {
		if err.Error() == fmt.Sprintf("key not found: %s", promoCacheKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get promo from cache: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var promo domain.Promo
	if err := json.Unmarshal(data, &promo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal promo: %w", err)
	}

	return &promo, nil
}

// Delete removes the promo from the cache.
func (r *RedisPromoRepository) Delete(ctx context.Context) error {
	if err := r.cache.Delete(ctx, promoCacheKey); err != nil {
		return fmt.Errorf("failed to delete promo from cache: %w", err)
	}
	return nil
}
