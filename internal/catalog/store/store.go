package store

import (
	"context"
	"errors"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductStore defines the interface for catalog data operations.
// Consumers define this interface, not the MongoDB implementation.
type ProductStore interface {
	GetProduct(ctx context.Context, microempresaID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, microempresaID string, f domain.Filter) ([]*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	SetActive(ctx context.Context, microempresaID, productID string, active bool) error
	// DecrementStock atomically subtracts qty from the product's stock and
	// returns the updated product. Fails with ErrInsufficientStock when the
	// remaining stock would go negative.
	DecrementStock(ctx context.Context, microempresaID, productID string, qty int) (*domain.Product, error)
	// RestoreStock adds qty back, undoing a decrement for a sale that
	// could not be completed.
	RestoreStock(ctx context.Context, microempresaID, productID string, qty int) error
}
