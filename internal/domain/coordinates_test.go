package domain

import (
	"math"
	"testing"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	p := Coordinates{Lat: 21.0285, Lon: 105.8542}

	if d := Haversine(p, p); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestHaversineIsSymmetric(t *testing.T) {
	a := Coordinates{Lat: 21.0285, Lon: 105.8542}
	b := Coordinates{Lat: 10.7769, Lon: 106.7009}

	ab := Haversine(a, b)
	ba := Haversine(b, a)

	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestHaversineHanoiToHoChiMinhCity(t *testing.T) {
	hanoi := Coordinates{Lat: 21.0285, Lon: 105.8542}
	hcmc := Coordinates{Lat: 10.7769, Lon: 106.7009}

	// Great-circle distance between the two city centers is ~1,140 km.
	d := Haversine(hanoi, hcmc)
	if d < 1130 || d > 1150 {
		t.Fatalf("Hanoi -> HCMC = %.2f km, want ~1140 km", d)
	}
}

func TestHaversineOneDegreeOfLatitude(t *testing.T) {
	a := Coordinates{Lat: 0, Lon: 0}
	b := Coordinates{Lat: 1, Lon: 0}

	// One degree of latitude is ~111.19 km on a 6371 km sphere.
	d := Haversine(a, b)
	if d < 111.1 || d > 111.3 {
		t.Fatalf("one degree of latitude = %.3f km, want ~111.19 km", d)
	}
}
