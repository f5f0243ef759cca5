package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires all handlers into the API surface consumed by the UI.
func NewRouter(
	catalogH *CatalogHandler,
	cartH *CartHandler,
	checkoutH *CheckoutHandler,
	ordersH *OrdersHandler,
	profileH *ProfileHandler,
	requestTimeout time.Duration,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/services", func(r chi.Router) {
			r.Get("/", catalogH.ListServices)
			r.Get("/{service_id}", catalogH.GetService)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartH.GetCart)
			r.Post("/items", cartH.AddItem)
			r.Delete("/items/{index}", cartH.RemoveItem)
			r.Delete("/", cartH.ClearCart)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutH.GetState)
			r.Put("/details", checkoutH.SetDetails)
			r.Put("/payment-method", checkoutH.SelectPayment)
			r.Post("/validate", checkoutH.Validate)
			r.Post("/commit", checkoutH.Commit)
			r.Post("/abort", checkoutH.Abort)
		})

		r.Get("/orders", ordersH.ListOrders)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileH.GetProfile)
			r.Put("/", profileH.UpdateProfile)
			r.Delete("/", profileH.ClearProfile)
		})
	})

	return r
}
