package services

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	itemdomain "github.com/theEquinoxDev/LocalLoop/services/item/domain"
)

// Proximity search limits, in meters.
const (
	DefaultNearbyRadius = 2000.0
	MaxNearbyRadius     = 100_000.0
)

// NearbyRadius applies the default to an absent radius and rejects values
// outside (0, MaxNearbyRadius].
func NearbyRadius(r *float64) (float64, error) {
	if r == nil {
		return DefaultNearbyRadius, nil
	}
	if math.IsNaN(*r) || *r <= 0 || *r > MaxNearbyRadius {
		return 0, itemdomain.ErrInvalidRadius
	}
	return *r, nil
}

// NearbyCenter validates a search center and returns it in [lng, lat] order.
func NearbyCenter(lat, lng float64) (orb.Point, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return orb.Point{}, itemdomain.ErrInvalidLocation
	}
	return orb.Point{lng, lat}, nil
}

// DistanceMeters is the great-circle distance between two [lng, lat] points.
func DistanceMeters(a, b orb.Point) float64 {
	return geo.DistanceHaversine(a, b)
}
