package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/crissancio/saas-tenant-pos/internal/catalog/domain"
	"github.com/crissancio/saas-tenant-pos/internal/catalog/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// Sellable returns the cached listing the sales screen works from:
// active products with stock.
func (h *ProductHandler) Sellable(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	products, err := h.catalog.Sellable(r.Context(), claims.MicroempresaID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Search filters the full catalog. Query params: q (name substring),
// active, in_stock, low_stock.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	q := r.URL.Query()
	filter := domain.Filter{
		Query:       q.Get("q"),
		ActiveOnly:  q.Get("active") == "true",
		InStockOnly: q.Get("in_stock") == "true",
		LowStock:    q.Get("low_stock") == "true",
	}

	products, err := h.catalog.Search(r.Context(), claims.MicroempresaID, filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	product, err := h.catalog.GetProduct(r.Context(), claims.MicroempresaID, chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if p.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if p.Price < 0 || p.Stock < 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "price and stock must not be negative")
		return
	}
	p.MicroempresaID = claims.MicroempresaID
	p.Active = true

	if err := h.catalog.CreateProduct(r.Context(), &p); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	p.ID = chi.URLParam(r, "id")
	p.MicroempresaID = claims.MicroempresaID

	if err := h.catalog.UpdateProduct(r.Context(), &p); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

type SetActiveRequestDTO struct {
	Active bool `json:"active"`
}

func (h *ProductHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req SetActiveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.catalog.SetActive(r.Context(), claims.MicroempresaID, chi.URLParam(r, "id"), req.Active); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}
