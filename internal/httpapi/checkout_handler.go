package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	checkoutdomain "github.com/crissancio/saas-tenant-pos/internal/checkout/domain"
	"github.com/crissancio/saas-tenant-pos/internal/checkout/service"
	"github.com/crissancio/saas-tenant-pos/internal/client/registry"
)

type CheckoutHandler struct {
	checkout *service.Orchestrator
}

func NewCheckoutHandler(checkout *service.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type CheckoutStateDTO struct {
	State string                     `json:"state"`
	Draft checkoutdomain.ClientDraft `json:"draft"`
}

type EnterDocumentRequestDTO struct {
	Document string `json:"document"`
}

// State reports where the seller is in the checkout flow, with the
// preserved client draft so a reopened form is pre-filled.
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	respondJSON(w, http.StatusOK, CheckoutStateDTO{
		State: h.checkout.State(claims.UserID).String(),
		Draft: h.checkout.Draft(claims.UserID),
	})
}

func (h *CheckoutHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	if err := h.checkout.OpenCart(claims.UserID); err != nil {
		respondDomainError(w, err)
		return
	}
	h.State(w, r)
}

func (h *CheckoutHandler) RequestCheckout(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	if err := h.checkout.RequestCheckout(claims.UserID); err != nil {
		respondDomainError(w, err)
		return
	}
	h.State(w, r)
}

// EnterDocument resolves the document. A missing client answers 404
// with the state already moved to CLIENT_CREATION, so the front end
// opens the creation form off that response.
func (h *CheckoutHandler) EnterDocument(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req EnterDocumentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Document == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "document is required")
		return
	}

	client, err := h.checkout.EnterDocument(r.Context(), claims.MicroempresaID, claims.UserID, req.Document)
	if err != nil {
		if errors.Is(err, registry.ErrClientNotFound) {
			respondJSON(w, http.StatusNotFound, CheckoutStateDTO{
				State: h.checkout.State(claims.UserID).String(),
				Draft: h.checkout.Draft(claims.UserID),
			})
			return
		}
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, client)
}

func (h *CheckoutHandler) SubmitNewClient(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var draft checkoutdomain.ClientDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	client, err := h.checkout.SubmitNewClient(r.Context(), claims.MicroempresaID, claims.UserID, draft)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}

func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	sale, err := h.checkout.Confirm(r.Context(), claims.MicroempresaID, claims.UserID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sale)
}

func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	h.checkout.Cancel(claims.UserID)
	h.State(w, r)
}
