package venues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"", All},
		{"all", All},
		{"ALL", All},
		{"gym", Gym},
		{"Martial Arts", MartialArts},
		{"MartialArts", MartialArts},
		{"martial-arts", MartialArts},
		{" crossfit ", Crossfit},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCategory("curling")
	assert.Error(t, err)
}

func TestCategoryValid(t *testing.T) {
	assert.Len(t, Categories, 22)
	for _, c := range Categories {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, All.Valid())
	assert.False(t, Category("curling").Valid())
}

func TestSeed(t *testing.T) {
	all := Seed(Filter{})
	require.GreaterOrEqual(t, len(all), 5)

	seen := map[string]bool{}
	for _, v := range all {
		assert.False(t, seen[v.ID], "duplicate seed id %s", v.ID)
		seen[v.ID] = true
		assert.False(t, v.IsExternal())
		assert.True(t, v.Category.Valid())
		assert.True(t, v.Location.Valid())
	}
	assert.True(t, all[0].Sponsored)

	pools := Seed(Filter{Category: Pool})
	require.Len(t, pools, 1)
	assert.Equal(t, Pool, pools[0].Category)

	assert.Empty(t, Seed(Filter{Category: Golf}))

	// Callers may mutate the result freely.
	all[0].Name = "changed"
	assert.NotEqual(t, "changed", Seed(Filter{})[0].Name)
}

func TestFilterMatches(t *testing.T) {
	v := &Venue{Name: "Moda Tenis Kulübü", Description: "Clay courts", Category: Tennis}

	assert.True(t, Filter{}.Matches(v))
	assert.True(t, Filter{Category: All}.Matches(v))
	assert.True(t, Filter{Category: Tennis, Search: "moda"}.Matches(v))
	assert.True(t, Filter{Search: "CLAY"}.Matches(v))
	assert.False(t, Filter{Category: Gym}.Matches(v))
	assert.False(t, Filter{Search: "pool"}.Matches(v))
}
