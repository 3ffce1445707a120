package registry

import (
	"context"
	"errors"

	"github.com/crissancio/saas-tenant-pos/internal/client/domain"
)

// ErrClientNotFound means no client matches the document. It is not a
// failure: the checkout flow uses it to offer client creation.
var ErrClientNotFound = errors.New("client not found")

// Registry is the source of buyer records. Implementations may be
// in-memory, MongoDB-backed, or a remote HTTP service.
type Registry interface {
	FindByDocument(ctx context.Context, microempresaID, document string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, c *domain.Client) error
	List(ctx context.Context, microempresaID string) ([]*domain.Client, error)
	Deactivate(ctx context.Context, microempresaID, clientID string) error
}
