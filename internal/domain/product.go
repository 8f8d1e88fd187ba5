package domain

import "time"

// Product is a catalog item offered by a vendor.
type Product struct {
	ID          string
	VendorID    string
	Name        string
	Description string
	Price       float64
	ImageURL    string
	CreatedAt   time.Time
}
