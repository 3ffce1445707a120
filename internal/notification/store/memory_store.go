package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/notification/domain"
	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

// MemoryStore keeps notifications in memory. Notifications are
// transient by nature here; a restart starts with a clean slate, the
// same way the mobile apps did.
type MemoryStore struct {
	mu            sync.RWMutex
	notifications map[string]*domain.Notification
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		notifications: make(map[string]*domain.Notification),
	}
}

func (s *MemoryStore) Notify(_ context.Context, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *n
	if cp.ID == "" {
		cp.ID = uuid.New().String()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.notifications[cp.ID] = &cp
	return nil
}

func (s *MemoryStore) List(_ context.Context, microempresaID string) ([]*domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Notification
	for _, n := range s.notifications {
		if n.MicroempresaID == microempresaID {
			cp := *n
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *MemoryStore) MarkAsRead(_ context.Context, microempresaID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.MicroempresaID != microempresaID {
		return ErrNotificationNotFound
	}
	n.Read = true
	return nil
}
