// Package geo provides great-circle distance computation for lot annotation.
package geo

import (
	"math"

	"github.com/LeeJaeHaeng/parking-pass/core/model"
)

const earthRadiusKm = 6371

// DistanceKm returns the haversine distance between a and b in kilometres,
// rounded to one decimal. Either coordinate being unknown yields 0; callers
// must treat 0 as "not computable", not co-location.
func DistanceKm(a, b model.Coordinate) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)
	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*math.Pow(math.Sin(dLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return math.Round(earthRadiusKm*c*10) / 10
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
