package api

import (
	"net/http"

	"storefront-checkout-service/internal/api/handlers"
	"storefront-checkout-service/internal/ports"
	"storefront-checkout-service/internal/services"

	"github.com/gorilla/mux"
)

// Dependencies collects everything the HTTP surface needs.
type Dependencies struct {
	Vendors  ports.VendorRepository
	Products ports.ProductRepository
	Cart     ports.CartRepository
	Orders   ports.OrderRepository
	Cache    ports.SelectedVendorCache
	Checkout *services.CheckoutService
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root; handlers stay unaware of
// concrete adapters.
func NewRouter(deps Dependencies) http.Handler {
	r := mux.NewRouter()

	vendorHandler := &handlers.VendorHandler{Repo: deps.Vendors, Cache: deps.Cache}
	productHandler := &handlers.ProductHandler{Repo: deps.Products}
	cartHandler := &handlers.CartHandler{Repo: deps.Cart}
	orderHandler := &handlers.OrderHandler{Repo: deps.Orders}
	checkoutHandler := &handlers.CheckoutHandler{Service: deps.Checkout}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	r.HandleFunc("/vendors", vendorHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/vendors/{id}", vendorHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/users/{user_id}/selected-vendor", vendorHandler.Selected).Methods(http.MethodGet)

	r.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/products/{id}", productHandler.Get).Methods(http.MethodGet)

	r.HandleFunc("/cart", cartHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/cart", cartHandler.Add).Methods(http.MethodPost)
	r.HandleFunc("/cart/{id}", cartHandler.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/checkout", checkoutHandler.Checkout).Methods(http.MethodPost)

	r.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods(http.MethodPatch)

	return requestIDMiddleware(loggingMiddleware(r))
}
