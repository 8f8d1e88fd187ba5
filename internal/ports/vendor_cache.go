package ports

import "context"

// Optional cache of the vendor last assigned to a user at checkout.
// Writes are best-effort; a cache failure never fails a checkout.
type SelectedVendorCache interface {
	// Get returns ("", nil) when no vendor is cached for the user.
	Get(ctx context.Context, userID string) (string, error)
	Set(ctx context.Context, userID string, vendorID string) error
}
