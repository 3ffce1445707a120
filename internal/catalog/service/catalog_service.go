package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/cache"
	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	"github.com/crissancio/saas-tenant-pos/internal/catalog/store"
	"golang.org/x/sync/singleflight"
)

// CatalogService serves product listings through a cache and writes
// through to the store.
type CatalogService struct {
	store store.ProductStore
	cache cache.CatalogCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalogService(st store.ProductStore, c cache.CatalogCache) *CatalogService {
	return &CatalogService{
		store: st,
		cache: c,
	}
}

// Sellable returns the active, in-stock products for a microempresa.
// This is the listing the sales screen works from, so it is the one
// worth caching.
func (s *CatalogService) Sellable(ctx context.Context, microempresaID string) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do(microempresaID, func() (interface{}, error) {
		products, err := s.cache.Get(ctx, microempresaID)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("catalog cache get failed", "error", err)
		}

		products, err = s.store.ListProducts(ctx, microempresaID, domain.Filter{
			ActiveOnly:  true,
			InStockOnly: true,
		})
		if err != nil {
			return nil, err
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, microempresaID, products); err != nil {
				slog.Warn("catalog cache set failed", "error", err)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

// Search filters the full catalog, bypassing the cache.
func (s *CatalogService) Search(ctx context.Context, microempresaID string, f domain.Filter) ([]*domain.Product, error) {
	return s.store.ListProducts(ctx, microempresaID, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, microempresaID, productID string) (*domain.Product, error) {
	return s.store.GetProduct(ctx, microempresaID, productID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return err
	}
	s.invalidate(p.MicroempresaID)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return err
	}
	s.invalidate(p.MicroempresaID)
	return nil
}

func (s *CatalogService) SetActive(ctx context.Context, microempresaID, productID string, active bool) error {
	if err := s.store.SetActive(ctx, microempresaID, productID, active); err != nil {
		return err
	}
	s.invalidate(microempresaID)
	return nil
}

// DecrementStock subtracts sold quantity and returns the updated product
// so callers can check the reorder threshold.
func (s *CatalogService) DecrementStock(ctx context.Context, microempresaID, productID string, qty int) (*domain.Product, error) {
	p, err := s.store.DecrementStock(ctx, microempresaID, productID, qty)
	if err != nil {
		return nil, err
	}
	s.invalidate(microempresaID)
	return p, nil
}

// RestoreStock puts sold quantity back after an aborted sale.
func (s *CatalogService) RestoreStock(ctx context.Context, microempresaID, productID string, qty int) error {
	if err := s.store.RestoreStock(ctx, microempresaID, productID, qty); err != nil {
		return err
	}
	s.invalidate(microempresaID)
	return nil
}

func (s *CatalogService) invalidate(microempresaID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, microempresaID); err != nil {
		slog.Warn("catalog cache invalidate failed", "error", err)
	}
}
