package venues

import (
	"fmt"
	"strings"
)

type Category string

const (
	Gym         Category = "gym"
	Park        Category = "park"
	Court       Category = "court"
	Pool        Category = "pool"
	Salon       Category = "salon"
	Route       Category = "route"
	Stadium     Category = "stadium"
	Yoga        Category = "yoga"
	Boxing      Category = "boxing"
	Dance       Category = "dance"
	MartialArts Category = "martial_arts"
	Climbing    Category = "climbing"
	Tennis      Category = "tennis"
	Basketball  Category = "basketball"
	Football    Category = "football"
	Volleyball  Category = "volleyball"
	Golf        Category = "golf"
	Skate       Category = "skate"
	Track       Category = "track"
	Cycling     Category = "cycling"
	Beach       Category = "beach"
	Crossfit    Category = "crossfit"

	// All is a filter value only; no stored venue carries it.
	All Category = "all"
)

// Categories lists every storable category in display order.
var Categories = []Category{
	Gym, Park, Court, Pool, Salon, Route, Stadium, Yoga, Boxing, Dance, MartialArts,
	Climbing, Tennis, Basketball, Football, Volleyball, Golf, Skate, Track, Cycling,
	Beach, Crossfit,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts snake_case values and display names such as
// "Martial Arts" or "MartialArts". An empty string means All.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == string(All) {
		return All, nil
	}
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for _, c := range Categories {
		if s == string(c) || s == strings.ReplaceAll(string(c), "_", "") {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown venue category %q", s)
}
