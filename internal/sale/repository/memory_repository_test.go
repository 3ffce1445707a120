package repository

import (
	"context"
	"testing"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/sale/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memSale(microempresaID string, status domain.SaleStatus, createdAt time.Time) *domain.Sale {
	return &domain.Sale{
		ID:             uuid.New(),
		MicroempresaID: microempresaID,
		SellerID:       "seller-1",
		ClientID:       "c1",
		ClientName:     "Maria Quispe",
		Items: []domain.SaleItem{
			{ProductID: "p1", ProductName: "Arroz", Quantity: 2, UnitPrice: 4.5, Subtotal: 9},
		},
		Total:     9,
		Status:    status,
		Type:      domain.SaleTypePresencial,
		CreatedAt: createdAt,
	}
}

func TestCreateSale_StoresSaleAndOutboxEvent(t *testing.T) {
	sut := NewMemoryRepository()
	sale := memSale("tienda-1", domain.SaleStatusPagada, time.Now())

	require.NoError(t, sut.CreateSale(context.Background(), sale))

	stored, err := sut.GetSaleByID(context.Background(), "tienda-1", sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Total, stored.Total)

	events, err := sut.GetUnprocessedEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventSaleCompleted, events[0].EventType)
	assert.Equal(t, sale.ID.String(), events[0].AggregateID)
}

func TestGetSaleByID_WrongMicroempresa(t *testing.T) {
	sut := NewMemoryRepository()
	sale := memSale("tienda-1", domain.SaleStatusPagada, time.Now())
	require.NoError(t, sut.CreateSale(context.Background(), sale))

	_, err := sut.GetSaleByID(context.Background(), "otra-tienda", sale.ID)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestListSales_NewestFirst(t *testing.T) {
	sut := NewMemoryRepository()
	old := memSale("tienda-1", domain.SaleStatusPagada, time.Now().Add(-time.Hour))
	recent := memSale("tienda-1", domain.SaleStatusPagada, time.Now())
	require.NoError(t, sut.CreateSale(context.Background(), old))
	require.NoError(t, sut.CreateSale(context.Background(), recent))

	sales, err := sut.ListSales(context.Background(), "tienda-1", domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, recent.ID, sales[0].ID)
}

func TestListSales_StatusFilter(t *testing.T) {
	sut := NewMemoryRepository()
	require.NoError(t, sut.CreateSale(context.Background(), memSale("tienda-1", domain.SaleStatusPagada, time.Now())))
	require.NoError(t, sut.CreateSale(context.Background(), memSale("tienda-1", domain.SaleStatusPendiente, time.Now())))

	sales, err := sut.ListSales(context.Background(), "tienda-1", domain.ListFilter{Status: domain.SaleStatusPendiente})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, domain.SaleStatusPendiente, sales[0].Status)
}

func TestListSales_DateRange(t *testing.T) {
	sut := NewMemoryRepository()
	inRange := memSale("tienda-1", domain.SaleStatusPagada, time.Now().Add(-2*time.Hour))
	tooOld := memSale("tienda-1", domain.SaleStatusPagada, time.Now().Add(-48*time.Hour))
	require.NoError(t, sut.CreateSale(context.Background(), inRange))
	require.NoError(t, sut.CreateSale(context.Background(), tooOld))

	from := time.Now().Add(-24 * time.Hour)
	sales, err := sut.ListSales(context.Background(), "tienda-1", domain.ListFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, inRange.ID, sales[0].ID)
}

func TestOutbox_MarkProcessedDequeues(t *testing.T) {
	sut := NewMemoryRepository()
	require.NoError(t, sut.AddOutboxEvent(context.Background(), &OutboxEvent{
		AggregateID: "p1",
		EventType:   EventStockLow,
		Payload:     []byte(`{}`),
	}))

	events, err := sut.GetUnprocessedEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)

	require.NoError(t, sut.MarkEventAsProcessed(context.Background(), events[0].ID))

	events, err = sut.GetUnprocessedEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestOutbox_LimitRespected(t *testing.T) {
	sut := NewMemoryRepository()
	for i := 0; i < 5; i++ {
		require.NoError(t, sut.AddOutboxEvent(context.Background(), &OutboxEvent{
			AggregateID: "p1",
			EventType:   EventStockLow,
			Payload:     []byte(`{}`),
		}))
	}

	events, err := sut.GetUnprocessedEvents(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}
