package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a ProductStore backed by the "products" collection.
func NewMongoStore(db *mongo.Database) ProductStore {
	return &mongoStore{
		collection: db.Collection("products"),
	}
}

func (m *mongoStore) GetProduct(ctx context.Context, microempresaID, productID string) (*domain.Product, error) {
	filter := bson.M{"_id": productID, "microempresa_id": microempresaID}

	var p domain.Product
	err := m.collection.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (m *mongoStore) ListProducts(ctx context.Context, microempresaID string, f domain.Filter) ([]*domain.Product, error) {
	filter := bson.M{"microempresa_id": microempresaID}
	if f.ActiveOnly {
		filter["active"] = true
	}
	if f.InStockOnly {
		filter["stock"] = bson.M{"$gt": 0}
	}
	if f.LowStock {
		filter["$expr"] = bson.M{"$lte": bson.A{"$stock", "$min_stock"}}
	}
	if f.Query != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": f.Query, "$options": "i"}},
			bson.M{"category": bson.M{"$regex": f.Query, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

func (m *mongoStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (m *mongoStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()

	filter := bson.M{"_id": p.ID, "microempresa_id": p.MicroempresaID}
	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"category":    p.Category,
		"price":       p.Price,
		"stock":       p.Stock,
		"min_stock":   p.MinStock,
		"image":       p.Image,
		"active":      p.Active,
		"updated_at":  p.UpdatedAt,
	}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoStore) SetActive(ctx context.Context, microempresaID, productID string, active bool) error {
	filter := bson.M{"_id": productID, "microempresa_id": microempresaID}
	update := bson.M{"$set": bson.M{"active": active, "updated_at": time.Now()}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set product active flag: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoStore) DecrementStock(ctx context.Context, microempresaID, productID string, qty int) (*domain.Product, error) {
	// Conditional update so the stock can never go negative.
	filter := bson.M{
		"_id":             productID,
		"microempresa_id": microempresaID,
		"stock":           bson.M{"$gte": qty},
	}
	update := bson.M{
		"$inc": bson.M{"stock": -qty},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Product
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a missing product from one without enough stock.
			if _, getErr := m.GetProduct(ctx, microempresaID, productID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return &p, nil
}

func (m *mongoStore) RestoreStock(ctx context.Context, microempresaID, productID string, qty int) error {
	filter := bson.M{"_id": productID, "microempresa_id": microempresaID}
	update := bson.M{
		"$inc": bson.M{"stock": qty},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// CreateIndexes sets up the indexes the store queries rely on.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "microempresa_id", Value: 1}, {Key: "active", Value: 1}}},
		{Keys: bson.D{{Key: "microempresa_id", Value: 1}, {Key: "name", Value: 1}}},
	}

	_, err := db.Collection("products").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}
