package params

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/fatihreha/Miro-sub002/internal/overpass"
)

const maxRadius = 50000

var ErrMissingCenter = errors.New("lat and lon are required")

type SortOrder string

const (
	SortRelevance SortOrder = "relevance"
	SortDistance  SortOrder = "distance"
)

// Nearby is a parsed /map query.
type Nearby struct {
	Center   venues.Coordinate
	Radius   int // metres
	Category venues.Category
	Search   string
	Sort     SortOrder
}

// ParseNearby reads ?lat=&lon=&radius=&category=&q=&sort=. The centre is
// required; radius defaults to overpass.DefaultRadius and category to all.
func ParseNearby(q url.Values) (Nearby, error) {
	n := Nearby{
		Radius:   overpass.DefaultRadius,
		Category: venues.All,
		Sort:     SortRelevance,
	}

	latStr, lonStr := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lon"))
	if latStr == "" || lonStr == "" {
		return n, ErrMissingCenter
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return n, fmt.Errorf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return n, fmt.Errorf("invalid lon %q", lonStr)
	}
	n.Center = venues.Coordinate{Latitude: lat, Longitude: lon}
	if !n.Center.Valid() {
		return n, errors.New("lat must be within ±90 and lon within ±180")
	}

	if radiusStr := strings.TrimSpace(q.Get("radius")); radiusStr != "" {
		radius, err := strconv.Atoi(radiusStr)
		if err != nil || radius <= 0 {
			return n, fmt.Errorf("radius must be a positive number of metres, got %q", radiusStr)
		}
		if radius > maxRadius {
			radius = maxRadius
		}
		n.Radius = radius
	}

	if c := q.Get("category"); c != "" {
		cat, err := venues.ParseCategory(c)
		if err != nil {
			return n, err
		}
		n.Category = cat
	}

	n.Search = strings.TrimSpace(q.Get("q"))

	switch s := SortOrder(strings.ToLower(strings.TrimSpace(q.Get("sort")))); s {
	case "", SortRelevance:
	case SortDistance:
		n.Sort = SortDistance
	default:
		return n, fmt.Errorf("unknown sort %q", s)
	}

	return n, nil
}
