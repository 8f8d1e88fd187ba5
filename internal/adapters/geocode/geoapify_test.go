package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-checkout-service/internal/domain"
)

func testGeocoder(t *testing.T, handler http.HandlerFunc) *GeoapifyGeocoder {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := NewGeoapifyGeocoder("test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.baseURL = srv.URL
	g.session = srv.Client()

	return g
}

func TestGeoapifyGeocodeParsesTopMatch(t *testing.T) {
	var gotQuery map[string]string

	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"text":   r.URL.Query().Get("text"),
			"limit":  r.URL.Query().Get("limit"),
			"apiKey": r.URL.Query().Get("apiKey"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{"properties":{"lat":21.0285,"lon":105.8542}}]}`))
	})

	c, err := g.Geocode(context.Background(), "  Hoan Kiem   Lake, Hanoi ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Lat != 21.0285 || c.Lon != 105.8542 {
		t.Fatalf("coordinates = %+v, want 21.0285/105.8542", c)
	}

	if gotQuery["text"] != "Hoan Kiem Lake, Hanoi" {
		t.Fatalf("text = %q, want whitespace-normalized address", gotQuery["text"])
	}
	if gotQuery["limit"] != "1" {
		t.Fatalf("limit = %q, want 1", gotQuery["limit"])
	}
	if gotQuery["apiKey"] != "test-key" {
		t.Fatalf("apiKey = %q, want test-key", gotQuery["apiKey"])
	}
}

func TestGeoapifyGeocodeEmptyResultSet(t *testing.T) {
	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[]}`))
	})

	_, err := g.Geocode(context.Background(), "nowhere")
	if !errors.Is(err, domain.ErrNoGeocodeResult) {
		t.Fatalf("err = %v, want ErrNoGeocodeResult", err)
	}
}

func TestGeoapifyGeocodeNon2xxResponse(t *testing.T) {
	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := g.Geocode(context.Background(), "somewhere")
	if !errors.Is(err, domain.ErrNoGeocodeResult) {
		t.Fatalf("err = %v, want ErrNoGeocodeResult", err)
	}
}

func TestGeoapifyGeocodeMissingCoordinates(t *testing.T) {
	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{"properties":{}}]}`))
	})

	_, err := g.Geocode(context.Background(), "somewhere")
	if !errors.Is(err, domain.ErrNoGeocodeResult) {
		t.Fatalf("err = %v, want ErrNoGeocodeResult", err)
	}
}

func TestGeoapifyGeocodeMalformedBody(t *testing.T) {
	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := g.Geocode(context.Background(), "somewhere")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if errors.Is(err, domain.ErrNoGeocodeResult) {
		t.Fatal("malformed body is a transport failure, not an empty result")
	}
}

func TestGeoapifyGeocodeRejectsBlankAddress(t *testing.T) {
	called := false
	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if _, err := g.Geocode(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank address")
	}
	if called {
		t.Fatal("blank address must not reach the API")
	}
}

func TestNewGeoapifyGeocoderRequiresKey(t *testing.T) {
	if _, err := NewGeoapifyGeocoder(""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
