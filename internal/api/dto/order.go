package dto

import "time"

type OrderItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type OrderResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	VendorID    string              `json:"vendor_id"`
	VendorName  string              `json:"vendor_name"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount float64             `json:"total_amount"`
	DeliveryLat float64             `json:"delivery_lat"`
	DeliveryLon float64             `json:"delivery_lon"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
