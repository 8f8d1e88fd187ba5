package dto

type CheckoutRequest struct {
	UserID          string `json:"user_id"`
	DeliveryAddress string `json:"delivery_address"`
	CheckoutToken   string `json:"checkout_token"`
}

type CheckoutResponse struct {
	Order      OrderResponse `json:"order"`
	VendorID   string        `json:"vendor_id"`
	VendorName string        `json:"vendor_name"`
	DistanceKm float64       `json:"distance_km"`
	Replayed   bool          `json:"replayed"`
}
