package geo

import (
	"testing"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(55.7558, 37.6173, 55.7558, 37.6173))
}

func TestDistanceMeters_NewYorkToLosAngeles(t *testing.T) {
	// ~3,936 km great-circle distance.
	d := DistanceMeters(40.7128, -74.0060, 34.0522, -118.2437)
	assert.InDelta(t, 3935746, d, 40000)
}

func TestDistanceMeters_ShortDistance(t *testing.T) {
	// One degree of latitude is about 111.19 km.
	d := DistanceMeters(50.0, 10.0, 51.0, 10.0)
	assert.InDelta(t, 111195, d, 200)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	ab := DistanceMeters(40.7128, -74.0060, 34.0522, -118.2437)
	ba := DistanceMeters(34.0522, -118.2437, 40.7128, -74.0060)
	assert.InDelta(t, ab, ba, 0.0001)
}

func TestEvaluateRegions_InsideAndOutside(t *testing.T) {
	centers := []models.Center{
		{ID: 1, Name: "Near", Latitude: 50.0, Longitude: 10.0, Radius: 150},
		{ID: 2, Name: "Far", Latitude: 51.0, Longitude: 10.0, Radius: 150},
	}

	entered := EvaluateRegions(50.0005, 10.0, centers)
	assert.Len(t, entered, 1)
	assert.Equal(t, 1, entered[0].ID)
}

func TestEvaluateRegions_BoundaryIsInclusive(t *testing.T) {
	center := models.Center{ID: 1, Latitude: 50.0, Longitude: 10.0}
	center.Radius = DistanceMeters(50.0, 10.0, 50.001, 10.0)

	entered := EvaluateRegions(50.001, 10.0, []models.Center{center})
	assert.Len(t, entered, 1, "distance equal to radius counts as entered")
}

func TestEvaluateRegions_Empty(t *testing.T) {
	assert.Empty(t, EvaluateRegions(50.0, 10.0, nil))
}
