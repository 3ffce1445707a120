package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/sale/repository"
	"github.com/segmentio/kafka-go"
)

// OutboxPoller drains the sale outbox into Kafka. Events stay in the
// outbox until the broker has acknowledged them, so a crash between
// publish and mark re-delivers rather than loses.
type OutboxPoller struct {
	tick   time.Duration
	batch  int
	repo   repository.SaleRepository
	writer *kafka.Writer
}

func NewOutboxPoller(repo repository.SaleRepository, topic string, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		tick:   time.Second,
		batch:  100,
		repo:   repo,
		writer: w,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) Close() error {
	return p.writer.Close()
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.GetUnprocessedEvents(ctx, p.batch)
	if err != nil {
		slog.Error("failed to fetch outbox events", "error", err)
		return
	}

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			slog.Error("failed to publish outbox event", "event_id", event.ID, "error", err)
			continue
		}
		if err := p.repo.MarkEventAsProcessed(ctx, event.ID); err != nil {
			slog.Error("failed to mark outbox event as processed", "event_id", event.ID, "error", err)
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event *repository.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // sale/product id for ordering
		Value: event.Payload,             // already JSON from the outbox
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}
