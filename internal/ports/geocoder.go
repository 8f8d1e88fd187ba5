package ports

import (
	"context"

	"storefront-checkout-service/internal/domain"
)

// Contract for resolving a free-text address to geographic coordinates.
type Geocoder interface {
	// Geocode returns the top match for the address.
	// Implementations return domain.ErrNoGeocodeResult when the provider
	// has no usable match.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
