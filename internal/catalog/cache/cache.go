package cache

import (
	"context"
	"errors"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
)

// CatalogCache caches the sellable-product listing per microempresa.
type CatalogCache interface {
	Get(ctx context.Context, microempresaID string) ([]*domain.Product, error)
	Set(ctx context.Context, microempresaID string, products []*domain.Product) error
	Delete(ctx context.Context, microempresaID string) error
}

var ErrCacheMiss = errors.New("cache miss")
