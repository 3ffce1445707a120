package domain

import "time"

// Client is a buyer record identified within a microempresa by its
// document number.
type Client struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	MicroempresaID string    `bson:"microempresa_id" json:"microempresa_id"`
	Name           string    `bson:"name" json:"name"`
	Document       string    `bson:"document" json:"document"`
	Phone          string    `bson:"phone" json:"phone"`
	Email          string    `bson:"email,omitempty" json:"email,omitempty"`
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}
