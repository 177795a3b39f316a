package overpass

import (
	"testing"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		tags map[string]string
		want venues.Category
	}{
		{"sport tag", map[string]string{"sport": "tennis"}, venues.Tennis},
		{"sport beats leisure", map[string]string{"sport": "basketball", "leisure": "pitch"}, venues.Basketball},
		{"sport list left to right", map[string]string{"sport": "soccer;basketball"}, venues.Football},
		{"unknown sport token skipped", map[string]string{"sport": "multi;volleyball"}, venues.Volleyball},
		{"unknown sport falls to leisure", map[string]string{"sport": "multi", "leisure": "pitch"}, venues.Court},
		{"leisure", map[string]string{"leisure": "swimming_pool"}, venues.Pool},
		{"leisure before amenity", map[string]string{"leisure": "park", "amenity": "gym"}, venues.Park},
		{"amenity", map[string]string{"amenity": "dancing_school"}, venues.Dance},
		{"building", map[string]string{"building": "stadium"}, venues.Stadium},
		{"natural", map[string]string{"natural": "beach"}, venues.Beach},
		{"route", map[string]string{"route": "hiking"}, venues.Route},
		{"facility beats name", map[string]string{"leisure": "fitness_centre", "name": "Yoga Loft"}, venues.Gym},
		{"name heuristic", map[string]string{"name": "Iron CrossFit Box"}, venues.Crossfit},
		{"turkish name", map[string]string{"name": "Kadıköy Boks Kulübü"}, venues.Boxing},
		{"turkish pool", map[string]string{"name": "Yüzme Havuzu"}, venues.Pool},
		{"english name fallback", map[string]string{"name:en": "Climbing Wall"}, venues.Climbing},
		{"upper case dotless i", map[string]string{"name": "KADIKÖY HALI SAHA"}, venues.Football},
		{"upper case turkish climbing", map[string]string{"name": "TIRMANIŞ MERKEZİ"}, venues.Climbing},
		{"upper case english i", map[string]string{"name": "CITY SWIMMING CLUB"}, venues.Pool},
		{"park must start a word", map[string]string{"name": "Otopark"}, venues.Gym},
		{"park with suffix", map[string]string{"name": "Maçka Parkı"}, venues.Park},
		{"nothing matches", map[string]string{"name": "Acme"}, venues.Gym},
		{"no tags", nil, venues.Gym},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.tags))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	tags := map[string]string{
		"name":     "Spor Salonu Tenis Havuz",
		"leisure":  "unknown",
		"amenity":  "unknown",
		"building": "yes",
	}
	first := Classify(tags)
	for i := 0; i < 200; i++ {
		assert.Equal(t, first, Classify(tags))
	}
	assert.Equal(t, venues.Tennis, first)
}
