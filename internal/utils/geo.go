package utils

import (
	"math"
)

// EarthRadiusKm matches the radius used in the search query's SQL predicate.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	cosine := math.Cos(rlat1)*math.Cos(rlat2)*math.Cos(rlon2-rlon1) +
		math.Sin(rlat1)*math.Sin(rlat2)

	// Guard acos against rounding drift just outside [-1, 1]
	cosine = math.Min(1, math.Max(-1, cosine))

	return EarthRadiusKm * math.Acos(cosine)
}
