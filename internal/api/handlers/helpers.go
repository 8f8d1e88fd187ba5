package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"storefront-checkout-service/internal/api/dto"
	"storefront-checkout-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func toOrderResponse(o domain.OrderRecord) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	return dto.OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		VendorID:    o.VendorID,
		VendorName:  o.VendorName,
		Items:       items,
		TotalAmount: o.TotalAmount,
		DeliveryLat: o.Delivery.Lat,
		DeliveryLon: o.Delivery.Lon,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toVendorResponse(v domain.Vendor) dto.VendorResponse {
	res := dto.VendorResponse{
		ID:          v.ID,
		DisplayName: v.DisplayName,
		Address:     v.Address,
	}
	if v.Coordinate != nil {
		lat, lon := v.Coordinate.Lat, v.Coordinate.Lon
		res.Lat, res.Lon = &lat, &lon
	}
	return res
}
