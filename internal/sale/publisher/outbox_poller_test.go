package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/sale/repository"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

func setupKafka(t *testing.T) (string, func()) {
	ctx := context.Background()

	kafkaContainer, err := kafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	}

	return brokers[0], cleanup
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafkaGo.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkaGo.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafkaGo.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		t.Logf("topic creation error (may already exist): %v", err)
	}
}

func TestOutboxPoller_PublishesAndMarksProcessed(t *testing.T) {
	brokerAddr, cleanup := setupKafka(t)
	defer cleanup()

	createTopic(t, brokerAddr, "sale-events")

	// Give Kafka time to fully initialize the topic
	time.Sleep(5 * time.Second)

	repo := repository.NewMemoryRepository()
	require.NoError(t, repo.AddOutboxEvent(context.Background(), &repository.OutboxEvent{
		AggregateID: "sale-123",
		EventType:   repository.EventSaleCompleted,
		Payload:     json.RawMessage(`{"sale_id":"sale-123","microempresa_id":"tienda-1","total":18.8}`),
	}))

	poller := NewOutboxPoller(repo, "sale-events", brokerAddr)
	defer poller.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	go poller.Run(ctx)

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:  []string{brokerAddr},
		Topic:    "sale-events",
		GroupID:  "test-consumer",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, "sale-123", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, repository.EventSaleCompleted, string(msg.Headers[0].Value))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "sale-123", payload["sale_id"])
	assert.Equal(t, "tienda-1", payload["microempresa_id"])

	// The acknowledged event must leave the outbox
	require.Eventually(t, func() bool {
		events, err := repo.GetUnprocessedEvents(context.Background(), 10)
		return err == nil && len(events) == 0
	}, 10*time.Second, 200*time.Millisecond)
}
