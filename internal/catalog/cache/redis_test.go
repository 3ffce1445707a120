package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return NewRedisCache(client), mr, cleanup
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	products := []*domain.Product{
		{ID: "p1", Name: "Arroz", Price: 4.5, Stock: 40},
		{ID: "p2", Name: "Aceite", Price: 9.8, Stock: 12},
	}
	data, _ := json.Marshal(products)
	mr.Set(cacheKey("tienda-1"), string(data))

	result, err := cache.Get(context.Background(), "tienda-1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "p1", result[0].ID)
	assert.Equal(t, 4.5, result[0].Price)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(cacheKey("tienda-1"), `[{"id":`))

	_, err := cache.Get(context.Background(), "tienda-1")
	require.ErrorContains(t, err, "unmarshal catalog failed")
}

func TestSet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	products := []*domain.Product{{ID: "p1", Name: "Arroz", Stock: 40}}
	require.NoError(t, cache.Set(context.Background(), "tienda-1", products))

	stored, err := mr.Get(cacheKey("tienda-1"))
	require.NoError(t, err)

	var decoded []*domain.Product
	require.NoError(t, json.Unmarshal([]byte(stored), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "p1", decoded[0].ID)
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), "tienda-1", []*domain.Product{}))

	ttl := mr.TTL(cacheKey("tienda-1"))
	assert.True(t, ttl >= 5*time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl <= 6*time.Minute, "TTL should be base + max jitter")
}

func TestDelete_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("tienda-1"), "[]")
	require.True(t, mr.Exists(cacheKey("tienda-1")))

	require.NoError(t, cache.Delete(context.Background(), "tienda-1"))
	assert.False(t, mr.Exists(cacheKey("tienda-1")))
}

func TestDelete_NonExistentKey(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, cache.Delete(context.Background(), "nonexistent"))
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "catalog:tienda-1", cacheKey("tienda-1"))
}
