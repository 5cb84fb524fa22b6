package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Jethin10/Hack-FInder/models"
)

var (
	delhi     = models.Coordinates{Lat: 28.6139, Lng: 77.209}
	bangalore = models.Coordinates{Lat: 12.9716, Lng: 77.5946}
	london    = models.Coordinates{Lat: 51.5074, Lng: -0.1278}
)

func TestDistanceKm_Symmetric(t *testing.T) {
	assert.InDelta(t, DistanceKm(delhi, bangalore), DistanceKm(bangalore, delhi), 1e-9)
	assert.InDelta(t, DistanceKm(delhi, london), DistanceKm(london, delhi), 1e-9)
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceKm(delhi, delhi))
	assert.Equal(t, 0.0, DistanceKm(models.Coordinates{}, models.Coordinates{}))
}

func TestDistanceKm_KnownPairs(t *testing.T) {
	// Delhi to Bangalore is roughly 1740 km as the crow flies.
	assert.InDelta(t, 1740, DistanceKm(delhi, bangalore), 25)

	// Delhi to London is roughly 6700 km.
	assert.InDelta(t, 6700, DistanceKm(delhi, london), 60)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 12.3, RoundKm(12.34))
	assert.Equal(t, 12.4, RoundKm(12.35))
	assert.Equal(t, 0.0, RoundKm(0))
}
