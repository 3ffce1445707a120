package service

import (
	"sync"

	"github.com/crissancio/saas-tenant-pos/internal/cart/domain"
)

// Sessions holds one cart per seller session. Carts are created lazily
// and live for as long as the process; a seller only ever mutates their
// own cart, so the map lock is the only coordination needed.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart // sellerID -> cart
}

func NewSessions() *Sessions {
	return &Sessions{
		carts: make(map[string]*domain.Cart),
	}
}

// Cart returns the seller's cart, creating an empty one on first use.
func (s *Sessions) Cart(sellerID string) *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sellerID]
	if !ok {
		cart = domain.NewCart()
		s.carts[sellerID] = cart
	}
	return cart
}

// Reset drops the seller's cart entirely.
func (s *Sessions) Reset(sellerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sellerID)
}
