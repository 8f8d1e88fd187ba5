package domain

// Vendor is a store that can fulfill orders.
//
// A vendor's location is derived from Coordinate when present, otherwise
// geocoded from Address. A vendor with neither cannot be ranked by distance
// and is skipped during nearest-vendor resolution.
type Vendor struct {
	ID          string
	DisplayName string
	Address     string
	Coordinate  *Coordinates
}

// HasLocation reports whether a coordinate can possibly be derived for the vendor.
func (v Vendor) HasLocation() bool {
	return v.Coordinate != nil || v.Address != ""
}

// ResolvedAssignment is the outcome of one nearest-vendor resolution.
// It is transient and never persisted.
type ResolvedAssignment struct {
	Vendor     Vendor
	DistanceKm float64
}
