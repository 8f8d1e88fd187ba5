package domain

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine permits moving to next.
// Only pending -> completed and pending -> cancelled are defined; both
// targets are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == StatusPending && (next == StatusCompleted || next == StatusCancelled)
}

// OrderItem is one purchased line inside a placed order.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderRecord is the durable representation of a completed checkout.
// CheckoutToken is client-generated and makes the commit replay-safe.
type OrderRecord struct {
	ID            string
	UserID        string
	VendorID      string
	VendorName    string
	Items         []OrderItem
	TotalAmount   float64
	Delivery      Coordinates
	Status        OrderStatus
	CheckoutToken string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrderRecord aggregates cart lines into a pending order for the resolved vendor.
func NewOrderRecord(id string, userID string, token string, assignment ResolvedAssignment, delivery Coordinates, lines []CartLine, now time.Time) (OrderRecord, error) {
	if len(lines) == 0 {
		return OrderRecord{}, fmt.Errorf("new order: cart has no lines: %w", ErrValidation)
	}
	if token == "" {
		return OrderRecord{}, fmt.Errorf("new order: checkout token must be non-empty: %w", ErrValidation)
	}

	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}

	return OrderRecord{
		ID:            id,
		UserID:        userID,
		VendorID:      assignment.Vendor.ID,
		VendorName:    assignment.Vendor.DisplayName,
		Items:         items,
		TotalAmount:   CartTotal(lines),
		Delivery:      delivery,
		Status:        StatusPending,
		CheckoutToken: token,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
