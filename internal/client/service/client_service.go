package service

import (
	"context"
	"strings"

	"github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/crissancio/saas-tenant-pos/internal/client/registry"
)

// ClientService resolves document numbers to clients and creates new
// client records after validation.
type ClientService struct {
	registry registry.Registry
}

func NewClientService(r registry.Registry) *ClientService {
	return &ClientService{registry: r}
}

// Resolve looks a client up by exact document match. Returns
// registry.ErrClientNotFound when no client exists, which callers use
// to start the creation flow.
func (s *ClientService) Resolve(ctx context.Context, microempresaID, document string) (*domain.Client, error) {
	return s.registry.FindByDocument(ctx, microempresaID, strings.TrimSpace(document))
}

// Create validates the draft and registers the client. Validation is
// side-effect free: on failure nothing is written and the caller keeps
// the entered data.
func (s *ClientService) Create(ctx context.Context, c *domain.Client) error {
	if errs := Validate(c); len(errs) > 0 {
		return errs
	}
	c.Name = strings.TrimSpace(c.Name)
	c.Document = strings.TrimSpace(c.Document)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	return s.registry.Create(ctx, c)
}

func (s *ClientService) Update(ctx context.Context, c *domain.Client) error {
	if errs := Validate(c); len(errs) > 0 {
		return errs
	}
	return s.registry.Update(ctx, c)
}

func (s *ClientService) List(ctx context.Context, microempresaID string) ([]*domain.Client, error) {
	return s.registry.List(ctx, microempresaID)
}

func (s *ClientService) Deactivate(ctx context.Context, microempresaID, clientID string) error {
	return s.registry.Deactivate(ctx, microempresaID, clientID)
}
