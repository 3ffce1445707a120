package repository

import (
	"context"
	"errors"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/sale/domain"
	"github.com/google/uuid"
)

var ErrSaleNotFound = errors.New("sale not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OutboxEvent is a pending domain event written in the same transaction
// as the sale it belongs to.
type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

// Event types carried through the outbox.
const (
	EventSaleCompleted = "sale.completed"
	EventStockLow      = "stock.low"
)

// SaleRepository persists sales and their outbox events.
type SaleRepository interface {
	// CreateSale stores the sale and a sale.completed outbox event atomically.
	CreateSale(ctx context.Context, sale *domain.Sale) error
	GetSaleByID(ctx context.Context, microempresaID string, id uuid.UUID) (*domain.Sale, error)
	ListSales(ctx context.Context, microempresaID string, f domain.ListFilter) ([]*domain.Sale, error)

	AddOutboxEvent(ctx context.Context, event *OutboxEvent) error
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error

	Close() error
}
