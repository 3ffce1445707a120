package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crissancio/saas-tenant-pos/internal/notification/domain"
	"github.com/crissancio/saas-tenant-pos/internal/sale/repository"
	saleservice "github.com/crissancio/saas-tenant-pos/internal/sale/service"
	"github.com/segmentio/kafka-go"
)

// saleCompletedEvent mirrors the sale JSON written to the outbox. Only
// the fields the notification needs are decoded.
type saleCompletedEvent struct {
	MicroempresaID string  `json:"microempresa_id"`
	ClientName     string  `json:"client_name"`
	Total          float64 `json:"total"`
}

// NotificationSink receives the notifications built from sale events.
type NotificationSink interface {
	Notify(ctx context.Context, n *domain.Notification) error
}

// Consumer turns sale events from Kafka into in-app notifications.
type Consumer struct {
	sink   NotificationSink
	reader *kafka.Reader
}

func NewConsumer(sink NotificationSink, topic string, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "pos-notifications",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{sink: sink, reader: reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		slog.Error("failed to read sale event", "error", err)
		return
	}

	n, err := buildNotification(eventType(m), m.Value)
	if err != nil {
		slog.Error("failed to parse sale event", "error", err)
		return
	}
	if n == nil {
		return // event type we do not notify on
	}

	if err := c.sink.Notify(ctx, n); err != nil {
		slog.Error("failed to store notification", "error", err)
	}
}

func eventType(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}

func buildNotification(eventType string, payload []byte) (*domain.Notification, error) {
	switch eventType {
	case repository.EventSaleCompleted:
		var e saleCompletedEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("unmarshal sale.completed: %w", err)
		}
		return &domain.Notification{
			MicroempresaID: e.MicroempresaID,
			Type:           domain.TypeVentaRealizada,
			Message:        fmt.Sprintf("Venta realizada a %s por %.2f", e.ClientName, e.Total),
		}, nil

	case repository.EventStockLow:
		var e saleservice.StockLowEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("unmarshal stock.low: %w", err)
		}
		return &domain.Notification{
			MicroempresaID: e.MicroempresaID,
			Type:           domain.TypeStockBajo,
			Message:        fmt.Sprintf("Stock bajo: %s (%d unidades restantes)", e.ProductName, e.Stock),
		}, nil

	default:
		return nil, nil
	}
}
