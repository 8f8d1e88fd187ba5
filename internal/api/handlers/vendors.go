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

// VendorHandler exposes read-only vendor retrieval endpoints.
type VendorHandler struct {
	Repo  ports.VendorRepository
	Cache ports.SelectedVendorCache
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Repo.ListVendors(r.Context())
	if err != nil {
		log.Printf("list vendors failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVendorsResponse{Vendors: make([]dto.VendorResponse, 0, len(vendors))}
	for _, v := range vendors {
		res.Vendors = append(res.Vendors, toVendorResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	v, err := h.Repo.GetVendor(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "vendor not found")
		return
	}
	if err != nil {
		log.Printf("get vendor failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toVendorResponse(v))
}

// Selected returns the vendor last assigned to the user at checkout, if any.
func (h *VendorHandler) Selected(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	if h.Cache == nil {
		writeError(w, r, http.StatusNotFound, "selected vendor cache not configured")
		return
	}

	vendorID, err := h.Cache.Get(r.Context(), userID)
	if err != nil {
		log.Printf("get selected vendor failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SelectedVendorResponse{UserID: userID, VendorID: vendorID})
}
