package service

import (
	"context"
	"sync"

	cartdomain "github.com/crissancio/saas-tenant-pos/internal/cart/domain"
	clientdomain "github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/crissancio/saas-tenant-pos/internal/client/registry"
	saledomain "github.com/crissancio/saas-tenant-pos/internal/sale/domain"
)

// mockCarts hands out real carts keyed by seller, the same shape the
// session layer provides.
type mockCarts struct {
	m     sync.Mutex
	carts map[string]*cartdomain.Cart
}

func newMockCarts() *mockCarts {
	return &mockCarts{carts: make(map[string]*cartdomain.Cart)}
}

func (m *mockCarts) Cart(sellerID string) *cartdomain.Cart {
	m.m.Lock()
	defer m.m.Unlock()
	cart, ok := m.carts[sellerID]
	if !ok {
		cart = cartdomain.NewCart()
		m.carts[sellerID] = cart
	}
	return cart
}

// mockClients resolves from a fixed document set and captures created
// clients.
type mockClients struct {
	m          sync.Mutex
	byDocument map[string]*clientdomain.Client
	resolveErr error
	createErr  error
	created    *clientdomain.Client
}

func newMockClients() *mockClients {
	return &mockClients{byDocument: make(map[string]*clientdomain.Client)}
}

func (m *mockClients) Resolve(_ context.Context, _, document string) (*clientdomain.Client, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	c, ok := m.byDocument[document]
	if !ok {
		return nil, registry.ErrClientNotFound
	}
	return c, nil
}

func (m *mockClients) Create(_ context.Context, c *clientdomain.Client) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = "created-" + c.Document
	m.created = c
	m.byDocument[c.Document] = c
	return nil
}

// mockSink captures submitted sales.
type mockSink struct {
	m     sync.Mutex
	err   error
	sales []*saledomain.Sale
}

func (m *mockSink) SubmitSale(_ context.Context, sale *saledomain.Sale) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sales = append(m.sales, sale)
	return nil
}

func (m *mockSink) submitted() []*saledomain.Sale {
	m.m.Lock()
	defer m.m.Unlock()
	return m.sales
}
