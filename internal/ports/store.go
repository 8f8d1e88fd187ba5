package ports

import (
	"context"

	"storefront-checkout-service/internal/domain"
)

// Port: a boundary for retrieving Vendor entities from the document store.
type VendorRepository interface {
	// ListVendors returns every vendor record.
	ListVendors(ctx context.Context) ([]domain.Vendor, error)
	// ListVendorsByIDs returns the vendors matching ids; unknown ids are
	// silently omitted from the result.
	ListVendorsByIDs(ctx context.Context, ids []string) ([]domain.Vendor, error)
	// GetVendor returns domain.ErrNotFound when no vendor has the id.
	GetVendor(ctx context.Context, id string) (domain.Vendor, error)
}

// Port: a boundary for a user's pending cart lines.
type CartRepository interface {
	ListLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	AddLine(ctx context.Context, line domain.CartLine) error
	DeleteLine(ctx context.Context, id string) error
}

// Port: a boundary for placed orders.
type OrderRepository interface {
	// CommitCheckout persists the order and deletes the given cart lines in
	// one transaction. A replay with an already-committed checkout token is
	// a no-op and reports committed=false.
	CommitCheckout(ctx context.Context, order domain.OrderRecord, lineIDs []string) (committed bool, err error)
	// ListOrders returns a user's orders, newest first. An empty status
	// matches all statuses.
	ListOrders(ctx context.Context, userID string, status domain.OrderStatus) ([]domain.OrderRecord, error)
	// GetOrder returns domain.ErrNotFound when no order has the id.
	GetOrder(ctx context.Context, id string) (domain.OrderRecord, error)
	// GetOrderByToken returns domain.ErrNotFound when no order carries the
	// checkout token.
	GetOrderByToken(ctx context.Context, token string) (domain.OrderRecord, error)
	// UpdateStatus applies a status transition already validated by the caller.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// Port: a boundary for catalog products.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	// GetProduct returns domain.ErrNotFound when no product has the id.
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}
