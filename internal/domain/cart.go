package domain

import (
	"fmt"
	"time"
)

// CartLine is one pending product+quantity entry in a user's cart.
// Cart lines exist only until a checkout commits or the user removes them.
type CartLine struct {
	ID          string
	UserID      string
	VendorID    string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
	CreatedAt   time.Time
}

// Validate checks the invariants for a cart line before it is stored.
func (l CartLine) Validate() error {
	if l.UserID == "" {
		return fmt.Errorf("cart line: user id must be non-empty: %w", ErrValidation)
	}
	if l.ProductID == "" {
		return fmt.Errorf("cart line: product id must be non-empty: %w", ErrValidation)
	}
	if l.Quantity < 1 {
		return fmt.Errorf("cart line: quantity %d must be >= 1: %w", l.Quantity, ErrValidation)
	}
	if l.UnitPrice < 0 {
		return fmt.Errorf("cart line: unit price %.2f must be >= 0: %w", l.UnitPrice, ErrValidation)
	}
	return nil
}

// CartTotal sums quantity times unit price over all lines.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += float64(l.Quantity) * l.UnitPrice
	}
	return total
}

// VendorIDs returns the distinct vendor ids referenced by the lines,
// in first-appearance order. Lines without vendor affinity are skipped.
func VendorIDs(lines []CartLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.VendorID == "" {
			continue
		}
		if _, ok := seen[l.VendorID]; ok {
			continue
		}
		seen[l.VendorID] = struct{}{}
		ids = append(ids, l.VendorID)
	}
	return ids
}
