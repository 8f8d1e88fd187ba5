package services

import (
	"context"
	"errors"
	"testing"

	"storefront-checkout-service/internal/adapters/geocode"
	"storefront-checkout-service/internal/domain"
)

// fakeVendorRepo serves a fixed vendor list from memory.
type fakeVendorRepo struct {
	vendors []domain.Vendor
}

func (f *fakeVendorRepo) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	return f.vendors, nil
}

func (f *fakeVendorRepo) ListVendorsByIDs(ctx context.Context, ids []string) ([]domain.Vendor, error) {
	byID := make(map[string]domain.Vendor, len(f.vendors))
	for _, v := range f.vendors {
		byID[v.ID] = v
	}

	out := make([]domain.Vendor, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVendorRepo) GetVendor(ctx context.Context, id string) (domain.Vendor, error) {
	for _, v := range f.vendors {
		if v.ID == id {
			return v, nil
		}
	}
	return domain.Vendor{}, domain.ErrNotFound
}

func coord(lat, lon float64) *domain.Coordinates {
	return &domain.Coordinates{Lat: lat, Lon: lon}
}

func TestResolveSelectsNearestVendor(t *testing.T) {
	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"1 Delivery Street": {Lat: 0, Lon: 0},
	})
	repo := &fakeVendorRepo{vendors: []domain.Vendor{
		{ID: "far", DisplayName: "Far", Coordinate: coord(0.5, 0)},
		{ID: "near", DisplayName: "Near", Coordinate: coord(0.018, 0)},
		{ID: "mid", DisplayName: "Mid", Coordinate: coord(0.2, 0)},
	}}

	res, err := ResolveNearestVendor(context.Background(), ResolveRequest{
		DeliveryAddress: "1 Delivery Street",
	}, geocoder, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Assignment.Vendor.ID != "near" {
		t.Fatalf("vendor = %q, want %q", res.Assignment.Vendor.ID, "near")
	}
	if res.Assignment.DistanceKm < 1.9 || res.Assignment.DistanceKm > 2.1 {
		t.Fatalf("distance = %.3f km, want ~2 km", res.Assignment.DistanceKm)
	}
	if res.Delivery != (domain.Coordinates{Lat: 0, Lon: 0}) {
		t.Fatalf("delivery coordinate = %+v, want origin", res.Delivery)
	}
}

func TestResolveEmptyAddressShortCircuits(t *testing.T) {
	geocoder := geocode.NewMockGeocoder(nil)
	repo := &fakeVendorRepo{vendors: []domain.Vendor{{ID: "v1", Coordinate: coord(1, 1)}}}

	for _, address := range []string{"", "   ", "\t\n"} {
		_, err := ResolveNearestVendor(context.Background(), ResolveRequest{
			DeliveryAddress: address,
		}, geocoder, repo)
		if !errors.Is(err, domain.ErrInvalidAddress) {
			t.Fatalf("address %q: err = %v, want ErrInvalidAddress", address, err)
		}
	}

	if geocoder.Calls() != 0 {
		t.Fatalf("geocoder called %d times, want 0", geocoder.Calls())
	}
}

func TestResolveUnresolvableDeliveryAddress(t *testing.T) {
	geocoder := geocode.NewMockGeocoder(nil) // knows no addresses
	repo := &fakeVendorRepo{vendors: []domain.Vendor{{ID: "v1", Coordinate: coord(1, 1)}}}

	_, err := ResolveNearestVendor(context.Background(), ResolveRequest{
		DeliveryAddress: "nowhere at all",
	}, geocoder, repo)
	if !errors.Is(err, domain.ErrAddressUnresolvable) {
		t.Fatalf("err = %v, want ErrAddressUnresolvable", err)
	}
}

func TestResolveNoVendors(t *testing.T) {
	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"1 Delivery Street": {Lat: 0, Lon: 0},
	})
	repo := &fakeVendorRepo{}

	_, err := ResolveNearestVendor(context.Background(), ResolveRequest{
		DeliveryAddress: "1 Delivery Street",
	}, geocoder, repo)
	if !errors.Is(err, domain.ErrNoVendors) {
		t.Fatalf("err = %v, want ErrNoVendors", err)
	}

	// Candidate restriction that matches nothing behaves the same way.
	_, err = ResolveNearestVendor(context.Background(), ResolveRequest{
		DeliveryAddress:    "1 Delivery Street",
		CandidateVendorIDs: []string{"ghost"},
	}, geocoder, &fakeVendorRepo{vendors: []domain.Vendor{{ID: "v1", Coordinate: coord(1, 1)}}})
	if !errors.Is(err, domain.ErrNoVendors) {
		t.Fatalf("err = %v, want ErrNoVendors for unknown candidates", err)
	}
}

func TestResolveNoResolvableVendor(t *testing.T) {
	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"1 Delivery Street": {Lat: 0, Lon: 0},
	})
	repo := &fakeVendorRepo{vendors: []domain.Vendor{
		{ID: "v1", DisplayName: "No location"},
		{ID: "v2", DisplayName: "Also no location"},
	}}

	_, err := ResolveNearestVendor(context.Background(), ResolveRequest{
		DeliveryAddress: "1 Delivery Street",
	}, geocoder, repo)
	if !errors.Is(err, domain.ErrNoResolvableVendor) {
		t.Fatalf("err = %v, want ErrNoResolvableVendor", err)
	}
}

func TestResolveMixedVendorLocationSources(t *testing.T) {
	// V1 has a stored coordinate 5 km out, V2 only an address that geocodes
	// to 2 km out, V3 has nothing. V2 must win and V3 must be skipped
	// without failing the call.
	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"1 Delivery Street": {Lat: 0, Lon: 0},
		"2 Vendor Avenue":   {Lat: 0.018, Lon: 0},
	})
	repo := &fakeVendorRepo{vendors: []domain.Vendor{
		{ID: "v1", DisplayName: "Stored coordinate", Coordinate: coord(0.045, 0)},
		{ID: "v2", DisplayName: "Address only", Address: "2 Vendor Avenue"},
		{ID: "v3", DisplayName: "Unlocatable"},
	}}

	res, err := ResolveNearestVendor(context.Background(), ResolveRequest{
		DeliveryAddress:    "1 Delivery Street",
		CandidateVendorIDs: []string{"v1", "v2", "v3"},
	}, geocoder, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Assignment.Vendor.ID != "v2" {
		t.Fatalf("vendor = %q, want %q", res.Assignment.Vendor.ID, "v2")
	}
	if res.Assignment.DistanceKm < 1.9 || res.Assignment.DistanceKm > 2.1 {
		t.Fatalf("distance = %.3f km, want ~2 km", res.Assignment.DistanceKm)
	}
}

func TestResolveExcludesVendorWithFailingGeocode(t *testing.T) {
	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"1 Delivery Street": {Lat: 0, Lon: 0},
		"2 Vendor Avenue":   {Lat: 0.1, Lon: 0},
		"3 Vendor Avenue":   {Lat: 0.05, Lon: 0},
	})
	geocoder.FailOn("4 Vendor Avenue")

	repo := &fakeVendorRepo{vendors: []domain.Vendor{
		{ID: "v1", Address: "2 Vendor Avenue"},
		{ID: "v2", Address: "3 Vendor Avenue"},
		{ID: "v3", Address: "4 Vendor Avenue"},
	}}

	res, err := ResolveNearestVendor(context.Background(), ResolveRequest{
		DeliveryAddress: "1 Delivery Street",
	}, geocoder, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Assignment.Vendor.ID != "v2" {
		t.Fatalf("vendor = %q, want %q", res.Assignment.Vendor.ID, "v2")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"1 Delivery Street": {Lat: 10, Lon: 20},
		"2 Vendor Avenue":   {Lat: 10.5, Lon: 20},
	})
	repo := &fakeVendorRepo{vendors: []domain.Vendor{
		{ID: "v1", Address: "2 Vendor Avenue"},
		{ID: "v2", Coordinate: coord(11, 20)},
	}}

	req := ResolveRequest{DeliveryAddress: "1 Delivery Street"}

	first, err := ResolveNearestVendor(context.Background(), req, geocoder, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ResolveNearestVendor(context.Background(), req, geocoder, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Assignment.Vendor.ID != second.Assignment.Vendor.ID {
		t.Fatalf("vendors differ across calls: %q vs %q", first.Assignment.Vendor.ID, second.Assignment.Vendor.ID)
	}
	if first.Assignment.DistanceKm != second.Assignment.DistanceKm {
		t.Fatalf("distances differ across calls: %v vs %v", first.Assignment.DistanceKm, second.Assignment.DistanceKm)
	}
}

func TestResolveTieKeepsFirstCandidate(t *testing.T) {
	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"1 Delivery Street": {Lat: 0, Lon: 0},
	})
	repo := &fakeVendorRepo{vendors: []domain.Vendor{
		{ID: "alpha", Coordinate: coord(0.1, 0)},
		{ID: "beta", Coordinate: coord(0.1, 0)},
	}}

	res, err := ResolveNearestVendor(context.Background(), ResolveRequest{
		DeliveryAddress:    "1 Delivery Street",
		CandidateVendorIDs: []string{"alpha", "beta"},
	}, geocoder, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Assignment.Vendor.ID != "alpha" {
		t.Fatalf("vendor = %q, want first-encountered %q", res.Assignment.Vendor.ID, "alpha")
	}
}
