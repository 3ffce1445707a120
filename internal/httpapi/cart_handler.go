package httpapi

import (
	"encoding/json"
	"net/http"

	cartdomain "github.com/crissancio/saas-tenant-pos/internal/cart/domain"
	cartservice "github.com/crissancio/saas-tenant-pos/internal/cart/service"
	catalogservice "github.com/crissancio/saas-tenant-pos/internal/catalog/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	sessions *cartservice.Sessions
	catalog  *catalogservice.CatalogService
}

func NewCartHandler(sessions *cartservice.Sessions, catalog *catalogservice.CatalogService) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalog,
	}
}

type CartViewDTO struct {
	Lines     []cartdomain.Line `json:"lines"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"item_count"`
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantityResponseDTO reports whether the requested quantity was
// capped at the available stock.
type UpdateQuantityResponseDTO struct {
	Cart    CartViewDTO `json:"cart"`
	Clamped bool        `json:"clamped"`
}

func (h *CartHandler) view(cart *cartdomain.Cart) CartViewDTO {
	lines := cart.Lines()
	if lines == nil {
		lines = []cartdomain.Line{}
	}
	return CartViewDTO{
		Lines:     lines,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	cart := h.sessions.Cart(claims.UserID)
	respondJSON(w, http.StatusOK, h.view(cart))
}

// AddItem puts one unit of the product in the seller's cart. Quantity
// adjustments go through UpdateQuantity.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), claims.MicroempresaID, req.ProductID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	cart := h.sessions.Cart(claims.UserID)
	if err := cart.AddItem(product); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.view(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart := h.sessions.Cart(claims.UserID)
	clamped := cart.UpdateQuantity(chi.URLParam(r, "product_id"), req.Quantity)
	respondJSON(w, http.StatusOK, UpdateQuantityResponseDTO{
		Cart:    h.view(cart),
		Clamped: clamped,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	cart := h.sessions.Cart(claims.UserID)
	cart.RemoveItem(chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, h.view(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	cart := h.sessions.Cart(claims.UserID)
	cart.Clear()
	respondJSON(w, http.StatusOK, h.view(cart))
}
