package registry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/google/uuid"
)

// MemoryRegistry implements Registry with in-memory storage.
type MemoryRegistry struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client // clientID -> client
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		clients: make(map[string]*domain.Client),
	}
}

// Seed loads an initial set of clients, assigning IDs where missing.
func (r *MemoryRegistry) Seed(clients []*domain.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range clients {
		cp := *c
		if cp.ID == "" {
			cp.ID = uuid.New().String()
		}
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = time.Now()
		}
		r.clients[cp.ID] = &cp
	}
}

func (r *MemoryRegistry) FindByDocument(_ context.Context, microempresaID, document string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.clients {
		if c.MicroempresaID == microempresaID && c.Document == document && c.Active {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrClientNotFound
}

func (r *MemoryRegistry) Create(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Active = true
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *MemoryRegistry) Update(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.clients[c.ID]
	if !ok || existing.MicroempresaID != c.MicroempresaID {
		return ErrClientNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *MemoryRegistry) List(_ context.Context, microempresaID string) ([]*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Client
	for _, c := range r.clients {
		if c.MicroempresaID == microempresaID {
			cp := *c
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *MemoryRegistry) Deactivate(_ context.Context, microempresaID, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[clientID]
	if !ok || c.MicroempresaID != microempresaID {
		return ErrClientNotFound
	}
	c.Active = false
	c.UpdatedAt = time.Now()
	return nil
}
