package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 5 * time.Minute,
	}
}

func (r *RedisCache) Get(ctx context.Context, microempresaID string) ([]*domain.Product, error) {
	data, err := r.client.Get(ctx, cacheKey(microempresaID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []*domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("unmarshal catalog failed: %w", err)
	}
	return products, nil
}

func (r *RedisCache) Set(ctx context.Context, microempresaID string, products []*domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal catalog failed: %w", err)
	}

	// Jitter keeps tenant caches from expiring in lockstep.
	ttl := r.baseTTL + time.Duration(rand.Intn(60))*time.Second
	if err := r.client.Set(ctx, cacheKey(microempresaID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, microempresaID string) error {
	if err := r.client.Del(ctx, cacheKey(microempresaID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(microempresaID string) string {
	return fmt.Sprintf("catalog:%s", microempresaID)
}
