package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	cartdomain "github.com/crissancio/saas-tenant-pos/internal/cart/domain"
	catalogstore "github.com/crissancio/saas-tenant-pos/internal/catalog/store"
	checkoutdomain "github.com/crissancio/saas-tenant-pos/internal/checkout/domain"
	"github.com/crissancio/saas-tenant-pos/internal/client/registry"
	clientservice "github.com/crissancio/saas-tenant-pos/internal/client/service"
	notifstore "github.com/crissancio/saas-tenant-pos/internal/notification/store"
	"github.com/crissancio/saas-tenant-pos/internal/sale/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ValidationResponse carries per-field reasons so the client creation
// form can highlight exactly what is missing.
type ValidationResponse struct {
	Error  string                     `json:"error"`
	Code   string                     `json:"code"`
	Fields []clientservice.FieldError `json:"fields"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondDomainError maps domain errors to HTTP statuses. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func respondDomainError(w http.ResponseWriter, err error) {
	var verrs clientservice.ValidationErrors
	if errors.As(err, &verrs) {
		respondJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
			Error:  "validation failed",
			Code:   "validation_failed",
			Fields: verrs,
		})
		return
	}

	switch {
	case errors.Is(err, cartdomain.ErrOutOfStock):
		respondError(w, http.StatusConflict, "out_of_stock", err.Error())
	case errors.Is(err, cartdomain.ErrInsufficientStock),
		errors.Is(err, catalogstore.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, checkoutdomain.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, checkoutdomain.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_state", err.Error())
	case errors.Is(err, registry.ErrClientNotFound):
		respondError(w, http.StatusNotFound, "client_not_found", err.Error())
	case errors.Is(err, catalogstore.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, repository.ErrSaleNotFound):
		respondError(w, http.StatusNotFound, "sale_not_found", err.Error())
	case errors.Is(err, notifstore.ErrNotificationNotFound):
		respondError(w, http.StatusNotFound, "notification_not_found", err.Error())
	default:
		slog.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
