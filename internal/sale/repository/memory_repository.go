package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/sale/domain"
	"github.com/google/uuid"
)

// MemoryRepository implements SaleRepository with in-memory storage,
// including the outbox queue so event flow can be tested without a
// database.
type MemoryRepository struct {
	mu     sync.RWMutex
	sales  []*domain.Sale
	events []*OutboxEvent
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (m *MemoryRepository) CreateSale(_ context.Context, sale *domain.Sale) error {
	payload, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("failed to marshal sale payload: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *sale
	cp.Items = append([]domain.SaleItem(nil), sale.Items...)
	m.sales = append([]*domain.Sale{&cp}, m.sales...)

	m.events = append(m.events, &OutboxEvent{
		ID:          m.nextID,
		AggregateID: sale.ID.String(),
		EventType:   EventSaleCompleted,
		Payload:     payload,
		CreatedAt:   time.Now(),
	})
	m.nextID++
	return nil
}

func (m *MemoryRepository) GetSaleByID(_ context.Context, microempresaID string, id uuid.UUID) (*domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.sales {
		if s.ID == id && s.MicroempresaID == microempresaID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrSaleNotFound
}

func (m *MemoryRepository) ListSales(_ context.Context, microempresaID string, f domain.ListFilter) ([]*domain.Sale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*domain.Sale
	for _, s := range m.sales {
		if s.MicroempresaID != microempresaID {
			continue
		}
		if f.From != nil && s.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && s.CreatedAt.After(*f.To) {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if f.Type != "" && s.Type != f.Type {
			continue
		}
		cp := *s
		result = append(result, &cp)
	}
	return result, nil
}

func (m *MemoryRepository) AddOutboxEvent(_ context.Context, event *OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *event
	cp.ID = m.nextID
	cp.CreatedAt = time.Now()
	m.nextID++
	m.events = append(m.events, &cp)
	return nil
}

func (m *MemoryRepository) GetUnprocessedEvents(_ context.Context, limit int) ([]*OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var events []*OutboxEvent
	for _, e := range m.events {
		if len(events) == limit {
			break
		}
		cp := *e
		events = append(events, &cp)
	}
	return events, nil
}

func (m *MemoryRepository) MarkEventAsProcessed(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.events {
		if e.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryRepository) Close() error {
	return nil
}
