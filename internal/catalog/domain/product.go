package domain

import "time"

// Product is a sellable catalog entry scoped to one microempresa.
// The cart treats products as immutable; stock changes only through
// the catalog store when a sale is completed.
type Product struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	MicroempresaID string    `bson:"microempresa_id" json:"microempresa_id"`
	Name           string    `bson:"name" json:"name"`
	Description    string    `bson:"description" json:"description"`
	Category       string    `bson:"category" json:"category"`
	Price          float64   `bson:"price" json:"price"`
	Stock          int       `bson:"stock" json:"stock"`
	MinStock       int       `bson:"min_stock" json:"min_stock"`
	Image          string    `bson:"image,omitempty" json:"image,omitempty"`
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// Filter narrows product listings.
type Filter struct {
	ActiveOnly  bool
	InStockOnly bool
	LowStock    bool
	Query       string
}
