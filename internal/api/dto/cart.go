package dto

import "time"

type AddCartLineRequest struct {
	UserID      string  `json:"user_id"`
	VendorID    string  `json:"vendor_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type CartLineResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	VendorID    string    `json:"vendor_id,omitempty"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListCartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total float64            `json:"total"`
}
