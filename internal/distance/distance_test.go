package distance

import (
	"testing"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	istanbul = venues.Coordinate{Latitude: 41.0082, Longitude: 28.9784}
	bebek    = venues.Coordinate{Latitude: 41.0769, Longitude: 29.0436}
)

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 9.394, Haversine(istanbul, bebek), 0.01)
	assert.Equal(t, 0.0, Haversine(istanbul, istanbul))
	assert.Equal(t, Haversine(istanbul, bebek), Haversine(bebek, istanbul))

	// A quarter of the equator.
	quarter := Haversine(venues.Coordinate{}, venues.Coordinate{Longitude: 90})
	assert.InDelta(t, 10007.5, quarter, 0.5)
}

func TestAnnotateAndSort(t *testing.T) {
	vs := []venues.Venue{
		{ID: "far", Location: venues.Coordinate{Latitude: 41.2, Longitude: 29.1}},
		{ID: "near", Location: bebek},
		{ID: "here", Location: istanbul},
	}

	placed := Annotate(istanbul, vs)
	require.Len(t, placed, 3)
	assert.Equal(t, "far", placed[0].ID)
	assert.Equal(t, 0.0, placed[2].DistanceKm)

	SortByDistance(placed)
	assert.Equal(t, "here", placed[0].ID)
	assert.Equal(t, "near", placed[1].ID)
	assert.Equal(t, "far", placed[2].ID)
}
