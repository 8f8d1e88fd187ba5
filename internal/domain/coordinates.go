package domain

import "math"

// Mean Earth radius in kilometers, used for great-circle distances.
const earthRadiusKm = 6371

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Haversine returns the great-circle distance between two points in kilometers.
// Inputs are decimal degrees and are converted to radians internally.
func Haversine(a, b Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
