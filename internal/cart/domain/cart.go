package domain

import (
	"errors"
	"sync"

	catalog "github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
)

var (
	// ErrOutOfStock is returned when adding a product with zero stock.
	ErrOutOfStock = errors.New("product out of stock")
	// ErrInsufficientStock is returned when an increment would exceed
	// the product's available stock. The cart is left unchanged.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Line is one product in the cart together with the quantity requested
// and the availability captured when the product was added.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Available int     `json:"available"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart holds the lines a seller intends to sell, at most one line per
// product, in insertion order. Every mutation keeps the invariants:
// no line has a non-positive quantity and no quantity exceeds the
// product's availability.
type Cart struct {
	mu    sync.Mutex
	lines []*Line
}

func NewCart() *Cart {
	return &Cart{}
}

// AddItem puts one unit of the product in the cart. An existing line is
// incremented by one; a new line starts at quantity one. Adding beyond
// the available stock is rejected without changing the cart.
func (c *Cart) AddItem(p *catalog.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.Stock <= 0 {
		return ErrOutOfStock
	}

	if line := c.find(p.ID); line != nil {
		if line.Quantity+1 > line.Available {
			return ErrInsufficientStock
		}
		line.Quantity++
		return nil
	}

	c.lines = append(c.lines, &Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Available: p.Stock,
	})
	return nil
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less
// removes the line. Requests above the available stock are clamped to
// it; the return value reports whether clamping happened so the caller
// can tell the user the quantity was capped.
func (c *Cart) UpdateQuantity(productID string, quantity int) (clamped bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.remove(productID)
		return false
	}

	line := c.find(productID)
	if line == nil {
		return false
	}
	if quantity > line.Available {
		line.Quantity = line.Available
		return true
	}
	line.Quantity = quantity
	return false
}

// RemoveItem deletes the line for the product. Removing an absent
// product is a no-op.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total is the sum of unit price times quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Lines returns a snapshot copy of the cart's lines.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]Line, len(c.lines))
	for i, l := range c.lines {
		snapshot[i] = *l
	}
	return snapshot
}

func (c *Cart) find(productID string) *Line {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

func (c *Cart) remove(productID string) {
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}
