package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"storefront-checkout-service/internal/api/dto"
	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/services"
)

// CheckoutHandler converts a cart into a placed order via the checkout service.
type CheckoutHandler struct {
	Service *services.CheckoutService
}

// Checkout maps each failure in the resolution taxonomy to a distinct
// user-facing message so the client can tell an unusable address apart from
// an empty vendor pool.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	result, err := h.Service.Checkout(r.Context(), services.CheckoutContext{
		UserID:          req.UserID,
		DeliveryAddress: req.DeliveryAddress,
		Token:           req.CheckoutToken,
	})
	if err != nil {
		h.writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CheckoutResponse{
		Order:      toOrderResponse(result.Order),
		VendorID:   result.Assignment.Vendor.ID,
		VendorName: result.Assignment.Vendor.DisplayName,
		DistanceKm: result.Assignment.DistanceKm,
		Replayed:   result.Replayed,
	})
}

func (h *CheckoutHandler) writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		writeError(w, r, http.StatusBadRequest, "please enter a delivery address")
	case errors.Is(err, domain.ErrAddressUnresolvable):
		writeError(w, r, http.StatusUnprocessableEntity, "could not determine your location from that address")
	case errors.Is(err, domain.ErrNoVendors):
		writeError(w, r, http.StatusNotFound, "no stores currently available")
	case errors.Is(err, domain.ErrNoResolvableVendor):
		writeError(w, r, http.StatusNotFound, "no store location could be determined")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, r, http.StatusBadRequest, "your cart is empty or the request is invalid")
	case errors.Is(err, domain.ErrCheckoutConflict):
		writeError(w, r, http.StatusConflict, "this checkout was already submitted")
	default:
		log.Printf("checkout failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "your order could not be placed, please try again")
	}
}
