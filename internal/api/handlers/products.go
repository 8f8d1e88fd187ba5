package handlers

import (
	"errors"
	"log"
	"net/http"

	"storefront-checkout-service/internal/api/dto"
	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/ports"

	"github.com/gorilla/mux"
)

// ProductHandler exposes read-only catalog endpoints.
type ProductHandler struct {
	Repo ports.ProductRepository
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Repo.ListProducts(r.Context())
	if err != nil {
		log.Printf("list products failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListProductsResponse{Products: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		res.Products = append(res.Products, toProductResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	p, err := h.Repo.GetProduct(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		log.Printf("get product failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toProductResponse(p))
}

func toProductResponse(p domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		VendorID:    p.VendorID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
}
