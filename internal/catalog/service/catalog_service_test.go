package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/cache"
	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	"github.com/crissancio/saas-tenant-pos/internal/catalog/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMicroempresa = "tienda-1"

type mockCache struct {
	m        sync.RWMutex
	products []*domain.Product
	err      error
	deletes  int
}

func (m *mockCache) Get(context.Context, string) ([]*domain.Product, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.products == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.products, nil
}

func (m *mockCache) Set(_ context.Context, _ string, products []*domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = products
	return nil
}

func (m *mockCache) Delete(context.Context, string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products = nil
	m.deletes++
	return nil
}

func (m *mockCache) cached() []*domain.Product {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.products
}

func (m *mockCache) deleteCount() int {
	m.m.RLock()
	defer m.m.RUnlock()
	return m.deletes
}

func seededStore() *store.MemoryStore {
	st := store.NewMemoryStore()
	st.Seed([]*domain.Product{
		{ID: "p1", MicroempresaID: testMicroempresa, Name: "Arroz", Price: 4.5, Stock: 40, MinStock: 10, Active: true},
		{ID: "p2", MicroempresaID: testMicroempresa, Name: "Aceite", Price: 9.8, Stock: 0, MinStock: 5, Active: true},
		{ID: "p3", MicroempresaID: testMicroempresa, Name: "Leche", Price: 3.2, Stock: 6, MinStock: 6, Active: false},
	})
	return st
}

func TestSellable_CacheMissFetchesAndCaches(t *testing.T) {
	mockC := &mockCache{}
	sut := NewCatalogService(seededStore(), mockC)

	products, err := sut.Sellable(context.Background(), testMicroempresa)
	require.NoError(t, err)

	// Only p1 is active with stock
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)

	require.Eventually(t, func() bool {
		return mockC.cached() != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "listing was not set in cache")
}

func TestSellable_CacheHitSkipsStore(t *testing.T) {
	mockC := &mockCache{
		products: []*domain.Product{{ID: "cached", Name: "Desde cache"}},
	}
	// Empty store: a hit must come from the cache
	sut := NewCatalogService(store.NewMemoryStore(), mockC)

	products, err := sut.Sellable(context.Background(), testMicroempresa)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "cached", products[0].ID)
}

func TestSellable_CacheErrorFallsBackToStore(t *testing.T) {
	mockC := &mockCache{err: errors.New("redis down")}
	sut := NewCatalogService(seededStore(), mockC)

	products, err := sut.Sellable(context.Background(), testMicroempresa)
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestCreateProduct_InvalidatesCache(t *testing.T) {
	mockC := &mockCache{products: []*domain.Product{{ID: "stale"}}}
	sut := NewCatalogService(store.NewMemoryStore(), mockC)

	err := sut.CreateProduct(context.Background(), &domain.Product{
		MicroempresaID: testMicroempresa,
		Name:           "Nuevo",
		Price:          1,
		Stock:          10,
		Active:         true,
	})
	require.NoError(t, err)
	assert.Nil(t, mockC.cached())
}

func TestDecrementStock_UpdatesAndInvalidates(t *testing.T) {
	mockC := &mockCache{products: []*domain.Product{{ID: "stale"}}}
	sut := NewCatalogService(seededStore(), mockC)

	p, err := sut.DecrementStock(context.Background(), testMicroempresa, "p1", 35)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
	assert.True(t, p.LowStock())
	assert.Equal(t, 1, mockC.deleteCount())
}

func TestDecrementStock_InsufficientStock(t *testing.T) {
	mockC := &mockCache{}
	sut := NewCatalogService(seededStore(), mockC)

	_, err := sut.DecrementStock(context.Background(), testMicroempresa, "p1", 41)
	assert.ErrorIs(t, err, store.ErrInsufficientStock)
}

func TestRestoreStock_PutsQuantityBack(t *testing.T) {
	mockC := &mockCache{}
	sut := NewCatalogService(seededStore(), mockC)

	_, err := sut.DecrementStock(context.Background(), testMicroempresa, "p1", 10)
	require.NoError(t, err)

	require.NoError(t, sut.RestoreStock(context.Background(), testMicroempresa, "p1", 10))

	p, err := sut.GetProduct(context.Background(), testMicroempresa, "p1")
	require.NoError(t, err)
	assert.Equal(t, 40, p.Stock)
}

func TestSearch_BypassesCache(t *testing.T) {
	mockC := &mockCache{products: []*domain.Product{{ID: "cached"}}}
	sut := NewCatalogService(seededStore(), mockC)

	products, err := sut.Search(context.Background(), testMicroempresa, domain.Filter{Query: "leche"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p3", products[0].ID)
}
