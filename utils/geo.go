package utils

import (
	"math"
)

const earthRadiusMiles = 3958.8

// DistanceMiles computes the haversine distance between two points in
// miles, rounded to 2 decimals for display.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusMiles*c*100) / 100
}

// RoundCoord rounds a coordinate to 2 decimals (~0.7 mi), coarse enough
// that nearby queries share a cache entry.
func RoundCoord(v float64) float64 {
	return math.Round(v*100) / 100
}
