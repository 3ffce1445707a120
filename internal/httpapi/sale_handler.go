package httpapi

import (
	"net/http"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/sale/domain"
	"github.com/crissancio/saas-tenant-pos/internal/sale/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SaleHandler struct {
	sales *service.SaleService
}

func NewSaleHandler(sales *service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// List returns the sale history. Query params: from, to (RFC 3339 or
// date only), estado, tipo.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	q := r.URL.Query()
	var filter domain.ListFilter

	if v := q.Get("from"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "from must be an RFC 3339 timestamp or a date")
			return
		}
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "to must be an RFC 3339 timestamp or a date")
			return
		}
		filter.To = &t
	}
	filter.Status = domain.SaleStatus(q.Get("estado"))
	filter.Type = domain.SaleType(q.Get("tipo"))

	sales, err := h.sales.ListSales(r.Context(), claims.MicroempresaID, filter)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if sales == nil {
		sales = []*domain.Sale{}
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "sale id must be a UUID")
		return
	}

	sale, err := h.sales.GetSale(r.Context(), claims.MicroempresaID, id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sale)
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
