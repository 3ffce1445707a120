package domain

import (
	"time"

	"github.com/google/uuid"
)

type SaleStatus string

const (
	SaleStatusPagada    SaleStatus = "PAGADA"
	SaleStatusPendiente SaleStatus = "PENDIENTE"
	SaleStatusCancelada SaleStatus = "CANCELADA"
)

type SaleType string

const (
	SaleTypePresencial SaleType = "PRESENCIAL"
	SaleTypeOnline     SaleType = "ONLINE"
)

// SaleItem is a cart line frozen at confirmation time. Prices are
// copied, not referenced, so later catalog changes cannot alter a sale.
type SaleItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// Sale is the immutable record produced by a confirmed checkout.
type Sale struct {
	ID             uuid.UUID  `json:"id"`
	MicroempresaID string     `json:"microempresa_id"`
	SellerID       string     `json:"seller_id"`
	ClientID       string     `json:"client_id,omitempty"`
	ClientName     string     `json:"client_name,omitempty"`
	Items          []SaleItem `json:"items"`
	Total          float64    `json:"total"`
	Status         SaleStatus `json:"status"`
	Type           SaleType   `json:"type"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ListFilter narrows sale listings.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status SaleStatus
	Type   SaleType
}
