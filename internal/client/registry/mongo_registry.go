package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRegistry struct {
	collection *mongo.Collection
}

// NewMongoRegistry creates a Registry backed by the "clients" collection.
func NewMongoRegistry(db *mongo.Database) Registry {
	return &mongoRegistry{
		collection: db.Collection("clients"),
	}
}

func (m *mongoRegistry) FindByDocument(ctx context.Context, microempresaID, document string) (*domain.Client, error) {
	filter := bson.M{
		"microempresa_id": microempresaID,
		"document":        document,
		"active":          true,
	}

	var c domain.Client
	err := m.collection.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client by document: %w", err)
	}
	return &c, nil
}

func (m *mongoRegistry) Create(ctx context.Context, c *domain.Client) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Active = true

	if _, err := m.collection.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (m *mongoRegistry) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedAt = time.Now()

	filter := bson.M{"_id": c.ID, "microempresa_id": c.MicroempresaID}
	update := bson.M{"$set": bson.M{
		"name":       c.Name,
		"document":   c.Document,
		"phone":      c.Phone,
		"email":      c.Email,
		"active":     c.Active,
		"updated_at": c.UpdatedAt,
	}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (m *mongoRegistry) List(ctx context.Context, microempresaID string) ([]*domain.Client, error) {
	filter := bson.M{"microempresa_id": microempresaID}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*domain.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to decode clients: %w", err)
	}
	return clients, nil
}

func (m *mongoRegistry) Deactivate(ctx context.Context, microempresaID, clientID string) error {
	filter := bson.M{"_id": clientID, "microempresa_id": microempresaID}
	update := bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate client: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrClientNotFound
	}
	return nil
}

// CreateIndexes sets up the unique document-per-microempresa index.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "microempresa_id", Value: 1}, {Key: "document", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := db.Collection("clients").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create client indexes: %w", err)
	}
	return nil
}
