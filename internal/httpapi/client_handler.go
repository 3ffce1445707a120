package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/crissancio/saas-tenant-pos/internal/client/domain"
	"github.com/crissancio/saas-tenant-pos/internal/client/service"
	"github.com/go-chi/chi/v5"
)

type ClientHandler struct {
	clients *service.ClientService
}

func NewClientHandler(clients *service.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	clients, err := h.clients.List(r.Context(), claims.MicroempresaID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, clients)
}

// VerifyDocument looks a client up by document number. A 404 here is
// the normal signal to open the creation form.
func (h *ClientHandler) VerifyDocument(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	client, err := h.clients.Resolve(r.Context(), claims.MicroempresaID, chi.URLParam(r, "document"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var c domain.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	c.MicroempresaID = claims.MicroempresaID
	c.Active = true

	if err := h.clients.Create(r.Context(), &c); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var c domain.Client
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	c.ID = chi.URLParam(r, "id")
	c.MicroempresaID = claims.MicroempresaID

	if err := h.clients.Update(r.Context(), &c); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	if err := h.clients.Deactivate(r.Context(), claims.MicroempresaID, chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
