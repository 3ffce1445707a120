package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cartdomain "github.com/crissancio/saas-tenant-pos/internal/cart/domain"
	"github.com/crissancio/saas-tenant-pos/internal/checkout/domain"
	clientdomain "github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/crissancio/saas-tenant-pos/internal/client/registry"
	saledomain "github.com/crissancio/saas-tenant-pos/internal/sale/domain"
	"github.com/google/uuid"
)

// CartProvider hands out the seller's cart.
type CartProvider interface {
	Cart(sellerID string) *cartdomain.Cart
}

// ClientResolver is the slice of the client service the checkout needs.
type ClientResolver interface {
	Resolve(ctx context.Context, microempresaID, document string) (*clientdomain.Client, error)
	Create(ctx context.Context, c *clientdomain.Client) error
}

// SaleSink accepts the finalized sale for persistence. The orchestrator
// does not retain sales after handing them off.
type SaleSink interface {
	SubmitSale(ctx context.Context, sale *saledomain.Sale) error
}

// session is one seller's position in the checkout flow. The cart is
// deliberately not part of it: cancelling a checkout never discards
// the cart.
type session struct {
	mu     sync.Mutex
	state  domain.State
	client *clientdomain.Client
	draft  domain.ClientDraft
}

// Orchestrator drives the checkout state machine for every seller
// session: cart review, client resolution or creation, confirmation.
type Orchestrator struct {
	mu       sync.Mutex
	sessions map[string]*session // sellerID -> checkout session

	carts   CartProvider
	clients ClientResolver
	sink    SaleSink
	now     func() time.Time
}

func NewOrchestrator(carts CartProvider, clients ClientResolver, sink SaleSink) *Orchestrator {
	return &Orchestrator{
		sessions: make(map[string]*session),
		carts:    carts,
		clients:  clients,
		sink:     sink,
		now:      time.Now,
	}
}

func (o *Orchestrator) session(sellerID string) *session {
	o.mu.Lock()
	defer o.mu.Unlock()

	s, ok := o.sessions[sellerID]
	if !ok {
		s = &session{state: domain.StateIdle}
		o.sessions[sellerID] = s
	}
	return s
}

// State returns the seller's current checkout state.
func (o *Orchestrator) State(sellerID string) domain.State {
	s := o.session(sellerID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns the preserved client-creation input.
func (o *Orchestrator) Draft(sellerID string) domain.ClientDraft {
	s := o.session(sellerID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// OpenCart moves to cart review. Viewing an empty cart is allowed.
func (o *Orchestrator) OpenCart(sellerID string) error {
	s := o.session(sellerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.CanTransition(s.state, domain.StateCartReview) {
		return domain.ErrIllegalTransition
	}
	s.state = domain.StateCartReview
	return nil
}

// RequestCheckout moves from cart review to client entry. Refused for
// an empty cart.
func (o *Orchestrator) RequestCheckout(sellerID string) error {
	s := o.session(sellerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.CanTransition(s.state, domain.StateClientEntry) {
		return domain.ErrIllegalTransition
	}
	if o.carts.Cart(sellerID).IsEmpty() {
		return domain.ErrEmptyCart
	}
	s.state = domain.StateClientEntry
	return nil
}

// EnterDocument resolves the entered document. A match moves to
// StateClientFound; no match moves to StateClientCreation with the
// document pre-filled and registry.ErrClientNotFound returned so the
// caller can open the creation form. Any other failure leaves the
// state untouched for a retry.
func (o *Orchestrator) EnterDocument(ctx context.Context, microempresaID, sellerID, document string) (*clientdomain.Client, error) {
	s := o.session(sellerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateClientEntry && s.state != domain.StateClientCreation {
		return nil, domain.ErrIllegalTransition
	}

	client, err := o.clients.Resolve(ctx, microempresaID, document)
	if err != nil {
		if errors.Is(err, registry.ErrClientNotFound) {
			s.state = domain.StateClientCreation
			s.draft.Document = document
			return nil, err
		}
		return nil, fmt.Errorf("resolve client: %w", err)
	}

	s.state = domain.StateClientFound
	s.client = client
	return client, nil
}

// SubmitNewClient validates and registers the drafted client. The
// draft is stored before anything can fail, so the entered data
// survives validation errors and registry outages.
func (o *Orchestrator) SubmitNewClient(ctx context.Context, microempresaID, sellerID string, draft domain.ClientDraft) (*clientdomain.Client, error) {
	s := o.session(sellerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.StateClientCreation {
		return nil, domain.ErrIllegalTransition
	}
	s.draft = draft

	client := &clientdomain.Client{
		MicroempresaID: microempresaID,
		Name:           draft.Name,
		Document:       draft.Document,
		Phone:          draft.Phone,
		Email:          draft.Email,
	}
	if err := o.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	s.state = domain.StateClientFound
	s.client = client
	return client, nil
}

// Confirm freezes the cart into a sale bound to the resolved client,
// hands it to the sink, clears the cart and returns to idle. A sink
// failure keeps the state and the cart so the seller can retry.
func (o *Orchestrator) Confirm(ctx context.Context, microempresaID, sellerID string) (*saledomain.Sale, error) {
	s := o.session(sellerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !domain.CanTransition(s.state, domain.StateConfirmed) {
		return nil, domain.ErrIllegalTransition
	}

	cart := o.carts.Cart(sellerID)
	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items := make([]saledomain.SaleItem, len(lines))
	var total float64
	for i, l := range lines {
		items[i] = saledomain.SaleItem{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
		}
		total += l.Subtotal()
	}

	sale := &saledomain.Sale{
		ID:             uuid.New(),
		MicroempresaID: microempresaID,
		SellerID:       sellerID,
		ClientID:       s.client.ID,
		ClientName:     s.client.Name,
		Items:          items,
		Total:          total,
		Status:         saledomain.SaleStatusPagada,
		Type:           saledomain.SaleTypePresencial,
		CreatedAt:      o.now(),
	}

	if err := o.sink.SubmitSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("submit sale: %w", err)
	}

	cart.Clear()
	s.state = domain.StateIdle
	s.client = nil
	s.draft = domain.ClientDraft{}
	return sale, nil
}

// Cancel discards in-flight client-entry data and returns to idle. The
// cart itself is never touched by cancellation.
func (o *Orchestrator) Cancel(sellerID string) {
	s := o.session(sellerID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = domain.StateIdle
	s.client = nil
	s.draft = domain.ClientDraft{}
}
