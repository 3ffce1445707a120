package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	"github.com/google/uuid"
)

// MemoryStore implements ProductStore with in-memory storage.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]*domain.Product // productID -> product
}

// NewMemoryStore creates a new in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]*domain.Product),
	}
}

// Seed loads an initial set of products, assigning IDs where missing.
func (s *MemoryStore) Seed(products []*domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		cp := *p
		if cp.ID == "" {
			cp.ID = uuid.New().String()
		}
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = time.Now()
		}
		s.products[cp.ID] = &cp
	}
}

func (s *MemoryStore) GetProduct(_ context.Context, microempresaID, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok || p.MicroempresaID != microempresaID {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) ListProducts(_ context.Context, microempresaID string, f domain.Filter) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Product
	for _, p := range s.products {
		if p.MicroempresaID != microempresaID {
			continue
		}
		if !matches(p, f) {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func matches(p *domain.Product, f domain.Filter) bool {
	if f.ActiveOnly && !p.Active {
		return false
	}
	if f.InStockOnly && p.Stock <= 0 {
		return false
	}
	if f.LowStock && !p.LowStock() {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			return false
		}
	}
	return true
}

func (s *MemoryStore) CreateProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[p.ID]
	if !ok || existing.MicroempresaID != p.MicroempresaID {
		return ErrProductNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *MemoryStore) SetActive(_ context.Context, microempresaID, productID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok || p.MicroempresaID != microempresaID {
		return ErrProductNotFound
	}
	p.Active = active
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) DecrementStock(_ context.Context, microempresaID, productID string, qty int) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok || p.MicroempresaID != microempresaID {
		return nil, ErrProductNotFound
	}
	if p.Stock < qty {
		return nil, ErrInsufficientStock
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) RestoreStock(_ context.Context, microempresaID, productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok || p.MicroempresaID != microempresaID {
		return ErrProductNotFound
	}
	p.Stock += qty
	p.UpdatedAt = time.Now()
	return nil
}
