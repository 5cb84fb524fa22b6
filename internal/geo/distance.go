// Package geo computes great-circle distances between coordinate pairs.
package geo

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Jethin10/Hack-FInder/models"
)

const earthRadiusKm = 6371

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceKm returns the haversine great-circle distance between origin and
// target in kilometers. Inputs are degrees; callers guarantee valid ranges.
func DistanceKm(origin, target models.Coordinates) float64 {
	deltaLat := toRadians(target.Lat - origin.Lat)
	deltaLng := toRadians(target.Lng - origin.Lng)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(toRadians(origin.Lat))*math.Cos(toRadians(target.Lat))*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// RoundKm rounds a distance to one decimal place for display on list items.
func RoundKm(km float64) float64 {
	rounded, _ := decimal.NewFromFloat(km).Round(1).Float64()
	return rounded
}
