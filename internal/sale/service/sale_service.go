package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	catalogdomain "github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	notifdomain "github.com/crissancio/saas-tenant-pos/internal/notification/domain"
	"github.com/crissancio/saas-tenant-pos/internal/sale/domain"
	"github.com/crissancio/saas-tenant-pos/internal/sale/repository"
	"github.com/google/uuid"
)

// StockAdjuster is the slice of the catalog the sale sink needs: it
// decrements stock when a sale completes and restores it when the sale
// cannot be persisted.
type StockAdjuster interface {
	DecrementStock(ctx context.Context, microempresaID, productID string, qty int) (*catalogdomain.Product, error)
	RestoreStock(ctx context.Context, microempresaID, productID string, qty int) error
}

// Notifier delivers notifications directly, bypassing the outbox. It is
// set in memory mode where no Kafka pipeline runs; in live mode it is
// nil and the outbox poller plus consumer carry the events instead.
type Notifier interface {
	Notify(ctx context.Context, n *notifdomain.Notification) error
}

// SaleService is the sale sink: it decrements stock, persists the sale
// with its outbox event, and raises low-stock alerts.
type SaleService struct {
	repo     repository.SaleRepository
	catalog  StockAdjuster
	notifier Notifier
}

func NewSaleService(repo repository.SaleRepository, catalog StockAdjuster, notifier Notifier) *SaleService {
	return &SaleService{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
	}
}

// StockLowEvent is the payload of a stock.low outbox event.
type StockLowEvent struct {
	MicroempresaID string `json:"microempresa_id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Stock          int    `json:"stock"`
	MinStock       int    `json:"min_stock"`
}

// SubmitSale finalizes a confirmed checkout. Stock is decremented
// first; if any line cannot be covered or the sale cannot be stored,
// the decrements already applied are restored and the error is
// returned so the checkout can be retried.
func (s *SaleService) SubmitSale(ctx context.Context, sale *domain.Sale) error {
	var lowStock []*catalogdomain.Product

	for i, item := range sale.Items {
		p, err := s.catalog.DecrementStock(ctx, sale.MicroempresaID, item.ProductID, item.Quantity)
		if err != nil {
			s.restore(ctx, sale, i)
			return fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
		}
		if p.LowStock() {
			lowStock = append(lowStock, p)
		}
	}

	if err := s.repo.CreateSale(ctx, sale); err != nil {
		s.restore(ctx, sale, len(sale.Items))
		return fmt.Errorf("persist sale: %w", err)
	}

	for _, p := range lowStock {
		s.raiseStockLow(ctx, p)
	}
	s.notifySaleCompleted(ctx, sale)
	return nil
}

func (s *SaleService) GetSale(ctx context.Context, microempresaID string, id uuid.UUID) (*domain.Sale, error) {
	return s.repo.GetSaleByID(ctx, microempresaID, id)
}

func (s *SaleService) ListSales(ctx context.Context, microempresaID string, f domain.ListFilter) ([]*domain.Sale, error) {
	return s.repo.ListSales(ctx, microempresaID, f)
}

// restore undoes the first n stock decrements of the sale.
func (s *SaleService) restore(ctx context.Context, sale *domain.Sale, n int) {
	for _, item := range sale.Items[:n] {
		if err := s.catalog.RestoreStock(ctx, sale.MicroempresaID, item.ProductID, item.Quantity); err != nil {
			slog.Error("failed to restore stock after aborted sale",
				"product_id", item.ProductID, "quantity", item.Quantity, "error", err)
		}
	}
}

func (s *SaleService) raiseStockLow(ctx context.Context, p *catalogdomain.Product) {
	payload, err := json.Marshal(StockLowEvent{
		MicroempresaID: p.MicroempresaID,
		ProductID:      p.ID,
		ProductName:    p.Name,
		Stock:          p.Stock,
		MinStock:       p.MinStock,
	})
	if err != nil {
		slog.Error("failed to marshal stock.low event", "error", err)
		return
	}

	event := &repository.OutboxEvent{
		AggregateID: p.ID,
		EventType:   repository.EventStockLow,
		Payload:     payload,
	}
	if err := s.repo.AddOutboxEvent(ctx, event); err != nil {
		slog.Error("failed to enqueue stock.low event", "product_id", p.ID, "error", err)
	}

	if s.notifier != nil {
		n := &notifdomain.Notification{
			MicroempresaID: p.MicroempresaID,
			Type:           notifdomain.TypeStockBajo,
			Message:        fmt.Sprintf("Stock bajo: %s (%d unidades restantes)", p.Name, p.Stock),
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			slog.Error("failed to deliver stock.low notification", "error", err)
		}
	}
}

func (s *SaleService) notifySaleCompleted(ctx context.Context, sale *domain.Sale) {
	if s.notifier == nil {
		return
	}
	n := &notifdomain.Notification{
		MicroempresaID: sale.MicroempresaID,
		Type:           notifdomain.TypeVentaRealizada,
		Message:        fmt.Sprintf("Venta realizada a %s por %.2f", sale.ClientName, sale.Total),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		slog.Error("failed to deliver sale notification", "error", err)
	}
}
