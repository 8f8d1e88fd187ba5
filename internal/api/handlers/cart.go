package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront-checkout-service/internal/api/dto"
	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/ports"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// CartHandler manages a user's pending cart lines.
type CartHandler struct {
	Repo ports.CartRepository
}

func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "user_id is required")
		return
	}

	lines, err := h.Repo.ListLines(r.Context(), userID)
	if err != nil {
		log.Printf("list cart lines failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListCartResponse{
		Lines: make([]dto.CartLineResponse, 0, len(lines)),
		Total: domain.CartTotal(lines),
	}
	for _, l := range lines {
		res.Lines = append(res.Lines, dto.CartLineResponse{
			ID:          l.ID,
			UserID:      l.UserID,
			VendorID:    l.VendorID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			CreatedAt:   l.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCartLineRequest

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

	line := domain.CartLine{
		ID:          uuid.NewString(),
		UserID:      strings.TrimSpace(req.UserID),
		VendorID:    strings.TrimSpace(req.VendorID),
		ProductID:   strings.TrimSpace(req.ProductID),
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		CreatedAt:   time.Now().UTC(),
	}

	if err := line.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repo.AddLine(r.Context(), line); err != nil {
		log.Printf("add cart line failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CartLineResponse{
		ID:          line.ID,
		UserID:      line.UserID,
		VendorID:    line.VendorID,
		ProductID:   line.ProductID,
		ProductName: line.ProductName,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		CreatedAt:   line.CreatedAt,
	})
}

func (h *CartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.Repo.DeleteLine(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "cart line not found")
		return
	}
	if err != nil {
		log.Printf("delete cart line failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
