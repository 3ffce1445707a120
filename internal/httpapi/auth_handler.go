package httpapi

import (
	"errors"
	"net/http"

	"github.com/crissancio/saas-tenant-pos/internal/auth"
)

type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(a *auth.Service) *AuthHandler {
	return &AuthHandler{auth: a}
}

type LoginResponseDTO struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        *auth.User `json:"user"`
}

// Login authenticates with form-encoded username and password fields,
// the shape the mobile clients already send.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	token, user, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, LoginResponseDTO{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}
