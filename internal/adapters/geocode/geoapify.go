package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront-checkout-service/internal/domain"
	"storefront-checkout-service/internal/platform/obs"
)

// GeoapifyGeocoder implements the Geocoder port over the Geoapify forward
// geocoding API (/v1/geocode/search).
//
// Each call uses the single top match (limit=1); there is no disambiguation.
// Failures are terminal: a non-2xx response or an empty result set maps to
// domain.ErrNoGeocodeResult, and no retry is attempted.
//
// The geocoder is safe for concurrent use.
type GeoapifyGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewGeoapifyGeocoder(apiKey string) (*GeoapifyGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("geoapify api key is empty")
	}

	return &GeoapifyGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.geoapify.com",
	}, nil
}

type geocodeResponse struct {
	Features []struct {
		Properties struct {
			Lat *float64 `json:"lat"`
			Lon *float64 `json:"lon"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode resolves a free-text address to coordinates using the top match.
func (g *GeoapifyGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geoapify.Geocode")(&err)

	norm := g.normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geoapify geocode: address must be non-empty")
	}

	req, err := g.newRequest(ctx, http.MethodGet, g.baseURL+"/v1/geocode/search")
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoapify geocode: %w", err)
	}

	q := req.URL.Query()
	q.Set("text", norm)
	q.Set("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := g.do(req)
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			// The provider answered but had nothing usable; same outcome
			// as an empty result set.
			return domain.Coordinates{}, fmt.Errorf("geoapify geocode: status %d for %q: %w", he.Code, norm, domain.ErrNoGeocodeResult)
		}
		return domain.Coordinates{}, fmt.Errorf("geoapify geocode: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geoapify geocode: decode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geoapify geocode: %q: %w", norm, domain.ErrNoGeocodeResult)
	}

	props := decoded.Features[0].Properties
	if props.Lat == nil || props.Lon == nil {
		return domain.Coordinates{}, fmt.Errorf("geoapify geocode: response missing lat/lon for %q: %w", norm, domain.ErrNoGeocodeResult)
	}

	return domain.Coordinates{Lat: *props.Lat, Lon: *props.Lon}, nil
}

// normalize collapses whitespace so equivalent inputs hit the API identically.
func (g *GeoapifyGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
