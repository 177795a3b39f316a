package overpass

import (
	"strings"
	"testing"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var istanbul = venues.Coordinate{Latitude: 41.0082, Longitude: 28.9784}

func TestClausesCoverEveryCategory(t *testing.T) {
	for _, c := range venues.Categories {
		cs := Clauses(c)
		assert.NotEmpty(t, cs, c)
		assert.LessOrEqual(t, len(cs), 4, c)
	}
}

func TestAllIsTheCoreFacilitySet(t *testing.T) {
	all := Clauses(venues.All)
	require.Len(t, all, 6)
	for _, c := range all {
		assert.Equal(t, "leisure", c.Key)
	}
	assert.Contains(t, all, Clause{"leisure", "fitness_centre"})
	assert.NotContains(t, all, Clause{"sport", "crossfit"})
}

func TestBuildQueryDefaults(t *testing.T) {
	q := BuildQuery("", istanbul, 0)
	assert.Equal(t, venues.All, q.Category)
	assert.Equal(t, DefaultRadius, q.Radius)
	assert.Equal(t, Clauses(venues.All), q.Clauses)
}

func TestQueryString(t *testing.T) {
	q := BuildQuery(venues.Gym, istanbul, 1500)
	ql := q.String()

	assert.True(t, strings.HasPrefix(ql, "[out:json][timeout:25];("))
	assert.True(t, strings.HasSuffix(ql, ");out center tags;"))
	assert.Contains(t, ql, `node["leisure"="fitness_centre"](around:1500,41.0082,28.9784);`)
	assert.Contains(t, ql, `way["amenity"="gym"](around:1500,41.0082,28.9784);`)
	assert.Contains(t, ql, `relation["amenity"="gym"](around:1500,41.0082,28.9784);`)
	assert.Equal(t, 2*3, strings.Count(ql, "(around:"))
}
