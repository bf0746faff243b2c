// internal/services/geo/haversine.go
package geo

import (
	"math"

	"github.com/careshare/csh_backendl/internal/models"
)

// Mean Earth radius in metres (WGS-84).
const earthRadiusMeters = 6371000

// DistanceMeters returns the great-circle distance between two
// lat/lon points using the Haversine formula. Accurate to a few
// metres at the regional scale the centers operate on.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// EvaluateRegions returns the centers whose geofence contains the
// given position. The boundary is inclusive: distance == radius
// counts as entered. Stateless one-shot evaluation; edge detection
// lives in the Monitor.
func EvaluateRegions(lat, lon float64, centers []models.Center) []models.Center {
	var entered []models.Center
	for _, center := range centers {
		if DistanceMeters(lat, lon, center.Latitude, center.Longitude) <= center.Radius {
			entered = append(entered, center)
		}
	}
	return entered
}
