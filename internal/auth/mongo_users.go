package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoUserStore struct {
	collection *mongo.Collection
}

// NewMongoUserStore creates a UserStore backed by the "users" collection.
func NewMongoUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{
		collection: db.Collection("users"),
	}
}

func (m *mongoUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	filter := bson.M{"email": strings.ToLower(email), "active": true}

	var u User
	err := m.collection.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}
