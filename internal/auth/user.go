package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User is an authenticated operator of one microempresa.
type User struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	MicroempresaID string    `bson:"microempresa_id" json:"microempresa_id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	PasswordHash   string    `bson:"password_hash" json:"-"`
	Role           string    `bson:"role" json:"role"`
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// UserStore looks up users for login.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// MemoryUserStore implements UserStore with in-memory storage.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*User // email -> user
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[string]*User),
	}
}

// Seed loads an initial set of users, assigning IDs where missing.
func (s *MemoryUserStore) Seed(users []*User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		cp := *u
		if cp.ID == "" {
			cp.ID = uuid.New().String()
		}
		s.users[strings.ToLower(cp.Email)] = &cp
	}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok || !u.Active {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
