package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"storefront-checkout-service/internal/api/dto"
	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/ports"

	"github.com/gorilla/mux"
)

// OrderHandler exposes placed-order history and status transitions.
type OrderHandler struct {
	Repo ports.OrderRepository
}

// List returns a user's orders newest first, optionally filtered by status.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "user_id is required")
		return
	}

	status := domain.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeError(w, r, http.StatusBadRequest, "status must be pending, completed or cancelled")
		return
	}

	orders, err := h.Repo.ListOrders(r.Context(), userID, status)
	if err != nil {
		log.Printf("list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrdersResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, toOrderResponse(o))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// UpdateStatus applies pending -> completed or pending -> cancelled.
// Anything else is rejected with 409.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req dto.UpdateOrderStatusRequest

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

	next := domain.OrderStatus(req.Status)
	if !next.Valid() {
		writeError(w, r, http.StatusBadRequest, "status must be pending, completed or cancelled")
		return
	}

	order, err := h.Repo.GetOrder(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		log.Printf("get order failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if !order.Status.CanTransitionTo(next) {
		writeError(w, r, http.StatusConflict, domain.ErrInvalidTransition.Error())
		return
	}

	if err := h.Repo.UpdateStatus(r.Context(), id, next); err != nil {
		log.Printf("update order status failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	order.Status = next
	writeJSON(w, r, http.StatusOK, toOrderResponse(order))
}
