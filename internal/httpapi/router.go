package httpapi

import (
	"net/http"
	"time"

	"github.com/crissancio/saas-tenant-pos/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Products      *ProductHandler
	Clients       *ClientHandler
	Cart          *CartHandler
	Checkout      *CheckoutHandler
	Sales         *SaleHandler
	Notifications *NotificationHandler
}

// NewRouter builds the API surface. Everything under /api/v1 except
// login requires a bearer token; catalog and client mutations
// additionally require the admin role.
func NewRouter(h Handlers, verify func(token string) (*auth.Claims, error), requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(verify))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Products.Sellable)
				r.Get("/search", h.Products.Search)
				r.Get("/{id}", h.Products.Get)

				r.Group(func(r chi.Router) {
					r.Use(RequireRole(auth.RoleAdmin))
					r.Post("/", h.Products.Create)
					r.Put("/{id}", h.Products.Update)
					r.Patch("/{id}/active", h.Products.SetActive)
				})
			})

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", h.Clients.List)
				r.Get("/verify-document/{document}", h.Clients.VerifyDocument)
				r.Post("/", h.Clients.Create)
				r.Put("/{id}", h.Clients.Update)
				r.Post("/{id}/deactivate", h.Clients.Deactivate)
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.GetCart)
				r.Post("/items", h.Cart.AddItem)
				r.Put("/items/{product_id}", h.Cart.UpdateQuantity)
				r.Delete("/items/{product_id}", h.Cart.RemoveItem)
				r.Delete("/", h.Cart.ClearCart)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", h.Checkout.State)
				r.Post("/open", h.Checkout.OpenCart)
				r.Post("/request", h.Checkout.RequestCheckout)
				r.Post("/document", h.Checkout.EnterDocument)
				r.Post("/client", h.Checkout.SubmitNewClient)
				r.Post("/confirm", h.Checkout.Confirm)
				r.Post("/cancel", h.Checkout.Cancel)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", h.Sales.List)
				r.Get("/{id}", h.Sales.Get)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notifications.List)
				r.Post("/{id}/read", h.Notifications.MarkAsRead)
			})
		})
	})

	return r
}
