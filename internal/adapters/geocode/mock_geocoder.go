package geocode

import (
	"context"
	"fmt"
	"sync/atomic"

	"storefront-checkout-service/internal/domain"
)

// MockGeocoder is a deterministic in-memory Geocoder for tests.
type MockGeocoder struct {
	known   map[string]domain.Coordinates
	failing map[string]struct{}
	calls   atomic.Int64
}

func NewMockGeocoder(known map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{
		known:   known,
		failing: make(map[string]struct{}),
	}
}

// FailOn makes subsequent lookups for address return an error.
func (m *MockGeocoder) FailOn(address string) {
	m.failing[address] = struct{}{}
}

// Calls reports how many Geocode invocations were made.
func (m *MockGeocoder) Calls() int64 { return m.calls.Load() }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	m.calls.Add(1)

	if _, ok := m.failing[address]; ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocoder: simulated failure for %q", address)
	}

	c, ok := m.known[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("mock geocoder: %q: %w", address, domain.ErrNoGeocodeResult)
	}

	return c, nil
}
