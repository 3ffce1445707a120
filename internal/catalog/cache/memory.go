package cache

import (
	"context"
	"sync"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
)

// MemoryCache is the in-process stand-in used when no Redis is wired.
// Entries never expire; the store invalidates on every write.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]*domain.Product
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string][]*domain.Product),
	}
}

func (m *MemoryCache) Get(_ context.Context, microempresaID string) ([]*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products, ok := m.entries[microempresaID]
	if !ok {
		return nil, ErrCacheMiss
	}
	return products, nil
}

func (m *MemoryCache) Set(_ context.Context, microempresaID string, products []*domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[microempresaID] = products
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, microempresaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, microempresaID)
	return nil
}
