package overpass

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
)

// DefaultRadius is the search radius in metres when the caller has none.
const DefaultRadius = 5000

// serverTimeout is the [timeout:N] setting sent to the interpreter, in seconds.
const serverTimeout = 25

// Clause is a single key=value tag match.
type Clause struct {
	Key   string
	Value string
}

func (c Clause) String() string {
	return fmt.Sprintf("[%q=%q]", c.Key, c.Value)
}

// clauses maps each category to the tag matches that find it. Mapped data
// tags the same facility inconsistently, so most categories have several.
var clauses = map[venues.Category][]Clause{
	venues.Gym:         {{"leisure", "fitness_centre"}, {"amenity", "gym"}},
	venues.Park:        {{"leisure", "park"}, {"leisure", "fitness_station"}},
	venues.Court:       {{"leisure", "pitch"}},
	venues.Pool:        {{"leisure", "swimming_pool"}, {"sport", "swimming"}, {"leisure", "water_park"}},
	venues.Salon:       {{"leisure", "sports_hall"}, {"building", "sports_hall"}},
	venues.Route:       {{"route", "hiking"}, {"route", "running"}},
	venues.Stadium:     {{"leisure", "stadium"}, {"building", "stadium"}},
	venues.Yoga:        {{"sport", "yoga"}},
	venues.Boxing:      {{"sport", "boxing"}},
	venues.Dance:       {{"leisure", "dance"}, {"sport", "dance"}, {"amenity", "dancing_school"}},
	venues.MartialArts: {{"sport", "martial_arts"}, {"sport", "karate"}, {"sport", "judo"}, {"sport", "taekwondo"}},
	venues.Climbing:    {{"sport", "climbing"}, {"sport", "climbing_adventure"}},
	venues.Tennis:      {{"sport", "tennis"}},
	venues.Basketball:  {{"sport", "basketball"}},
	venues.Football:    {{"sport", "soccer"}},
	venues.Volleyball:  {{"sport", "volleyball"}, {"sport", "beachvolleyball"}},
	venues.Golf:        {{"leisure", "golf_course"}, {"sport", "golf"}},
	venues.Skate:       {{"sport", "skateboard"}, {"sport", "roller_skating"}},
	venues.Track:       {{"leisure", "track"}, {"sport", "running"}, {"sport", "athletics"}},
	venues.Cycling:     {{"sport", "cycling"}, {"sport", "bmx"}},
	venues.Beach:       {{"natural", "beach"}, {"leisure", "beach_resort"}},
	venues.Crossfit:    {{"sport", "crossfit"}},

	// All is the established facility types only, not the union of every
	// category.
	venues.All: {
		{"leisure", "fitness_centre"},
		{"leisure", "sports_centre"},
		{"leisure", "pitch"},
		{"leisure", "swimming_pool"},
		{"leisure", "stadium"},
		{"leisure", "sports_hall"},
	},
}

// Clauses returns the tag matches for a category. An unknown category gets
// the All set.
func Clauses(c venues.Category) []Clause {
	if cs, ok := clauses[c]; ok {
		return cs
	}
	return clauses[venues.All]
}

// Query is a radius search around a point for any of a set of tag clauses.
type Query struct {
	Category venues.Category
	Center   venues.Coordinate
	Radius   int
	Clauses  []Clause
}

// BuildQuery never fails. Callers reject radius <= 0 before calling it; a
// zero radius here falls back to DefaultRadius.
func BuildQuery(category venues.Category, center venues.Coordinate, radiusMeters int) Query {
	if radiusMeters == 0 {
		radiusMeters = DefaultRadius
	}
	if category == "" {
		category = venues.All
	}
	return Query{
		Category: category,
		Center:   center,
		Radius:   radiusMeters,
		Clauses:  Clauses(category),
	}
}

// String renders the query in Overpass QL. Nodes, ways and relations are all
// searched; areas are returned with their centroid.
func (q Query) String() string {
	around := fmt.Sprintf("(around:%d,%s,%s)",
		q.Radius,
		strconv.FormatFloat(q.Center.Latitude, 'f', -1, 64),
		strconv.FormatFloat(q.Center.Longitude, 'f', -1, 64),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];(", serverTimeout)
	for _, c := range q.Clauses {
		for _, kind := range []string{"node", "way", "relation"} {
			b.WriteString(kind)
			b.WriteString(c.String())
			b.WriteString(around)
			b.WriteString(";")
		}
	}
	b.WriteString(");out center tags;")
	return b.String()
}

// key identifies a query for request collapsing.
func (q Query) key() string {
	return q.String()
}
