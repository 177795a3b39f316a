// Package distance computes great-circle distances for presentation.
package distance

import (
	"math"
	"sort"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b venues.Coordinate) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Placed is a venue annotated with its distance from the user. The distance
// is never stored with the venue.
type Placed struct {
	venues.Venue
	DistanceKm float64 `json:"distance_from_user_km"`
}

// Annotate attaches the distance from origin to every venue, keeping order.
func Annotate(origin venues.Coordinate, vs []venues.Venue) []Placed {
	out := make([]Placed, len(vs))
	for i, v := range vs {
		out[i] = Placed{Venue: v, DistanceKm: Haversine(origin, v.Location)}
	}
	return out
}

// SortByDistance orders placed venues nearest first. Equal distances keep
// the incoming order.
func SortByDistance(ps []Placed) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].DistanceKm < ps[j].DistanceKm
	})
}
