package httpapi

import (
	"context"
	"net/http"

	"github.com/crissancio/saas-tenant-pos/internal/notification/domain"
	"github.com/go-chi/chi/v5"
)

// NotificationReader is the read side of the notification store.
type NotificationReader interface {
	List(ctx context.Context, microempresaID string) ([]*domain.Notification, error)
	MarkAsRead(ctx context.Context, microempresaID, id string) error
}

type NotificationHandler struct {
	store NotificationReader
}

func NewNotificationHandler(store NotificationReader) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	notifications, err := h.store.List(r.Context(), claims.MicroempresaID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	if err := h.store.MarkAsRead(r.Context(), claims.MicroempresaID, chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"read": true})
}
