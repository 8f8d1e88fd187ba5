package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/ports"
)

// ResolveRequest describes one nearest-vendor resolution.
//
// CandidateVendorIDs restricts the search to the vendors already referenced
// by the cart. A nil or empty slice scans every vendor.
type ResolveRequest struct {
	DeliveryAddress    string
	CandidateVendorIDs []string
}

// Resolution is the successful outcome of ResolveNearestVendor: the winning
// vendor with its distance, plus the geocoded delivery point the ranking was
// computed against.
type Resolution struct {
	Assignment domain.ResolvedAssignment
	Delivery   domain.Coordinates
}

// Upper bound on concurrent per-vendor geocode calls.
const maxGeocodeInFlight = 5

// ResolveNearestVendor selects the geographically closest vendor with a
// resolvable location for a delivery address.
//
// The call is a pure query: it reads vendors and issues geocode lookups but
// never writes. Per-vendor coordinate resolution fans out concurrently; a
// single vendor's geocode failure excludes that vendor from ranking without
// aborting the others. Every failure mode is terminal for the call: there
// is no retry and no caching of geocode results.
func ResolveNearestVendor(
	ctx context.Context,
	req ResolveRequest,
	geocoder ports.Geocoder,
	vendors ports.VendorRepository,
) (*Resolution, error) {
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return nil, fmt.Errorf("resolve nearest vendor: %w", domain.ErrInvalidAddress)
	}

	delivery, err := geocoder.Geocode(ctx, address)
	if err != nil {
		log.Printf("op=resolve_nearest_vendor stage=geocode_delivery err=%v", err)
		return nil, fmt.Errorf("resolve nearest vendor: geocode delivery address: %w", domain.ErrAddressUnresolvable)
	}

	candidates, err := loadCandidates(ctx, vendors, req.CandidateVendorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve nearest vendor: load candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("resolve nearest vendor: %w", domain.ErrNoVendors)
	}

	// Fan out per-vendor coordinate resolution. Results are indexed by
	// candidate position so ranking below stays in first-encountered order.
	coords := make([]*domain.Coordinates, len(candidates))

	sem := make(chan struct{}, maxGeocodeInFlight)
	var wg sync.WaitGroup

	for i, v := range candidates {
		if !v.HasLocation() {
			log.Printf("op=resolve_nearest_vendor vendor=%s skip=no_coordinate_or_address", v.ID)
			continue
		}
		if v.Coordinate != nil {
			c := *v.Coordinate
			coords[i] = &c
			continue
		}

		wg.Add(1)
		go func(idx int, vendor domain.Vendor) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			c, err := geocoder.Geocode(ctx, vendor.Address)
			if err != nil {
				log.Printf("op=resolve_nearest_vendor vendor=%s skip=geocode_failed err=%v", vendor.ID, err)
				return
			}
			coords[idx] = &c
		}(i, v)
	}

	wg.Wait()

	// Strict minimum; ties keep the first-encountered vendor.
	var best *domain.ResolvedAssignment
	for i, v := range candidates {
		if coords[i] == nil {
			continue
		}
		d := domain.Haversine(delivery, *coords[i])
		if best == nil || d < best.DistanceKm {
			best = &domain.ResolvedAssignment{Vendor: v, DistanceKm: d}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("resolve nearest vendor: %w", domain.ErrNoResolvableVendor)
	}

	return &Resolution{Assignment: *best, Delivery: delivery}, nil
}

func loadCandidates(ctx context.Context, vendors ports.VendorRepository, ids []string) ([]domain.Vendor, error) {
	if len(ids) == 0 {
		return vendors.ListVendors(ctx)
	}
	return vendors.ListVendorsByIDs(ctx, ids)
}
