package overpass

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var sportCategories = map[string]venues.Category{
	"fitness":            venues.Gym,
	"swimming":           venues.Pool,
	"yoga":               venues.Yoga,
	"boxing":             venues.Boxing,
	"kickboxing":         venues.Boxing,
	"dance":              venues.Dance,
	"martial_arts":       venues.MartialArts,
	"karate":             venues.MartialArts,
	"judo":               venues.MartialArts,
	"taekwondo":          venues.MartialArts,
	"aikido":             venues.MartialArts,
	"climbing":           venues.Climbing,
	"climbing_adventure": venues.Climbing,
	"tennis":             venues.Tennis,
	"table_tennis":       venues.Tennis,
	"basketball":         venues.Basketball,
	"soccer":             venues.Football,
	"volleyball":         venues.Volleyball,
	"beachvolleyball":    venues.Volleyball,
	"golf":               venues.Golf,
	"skateboard":         venues.Skate,
	"roller_skating":     venues.Skate,
	"running":            venues.Track,
	"athletics":          venues.Track,
	"cycling":            venues.Cycling,
	"bmx":                venues.Cycling,
	"crossfit":           venues.Crossfit,
}

// facilityKeys is evaluated in order; the first key with a known value wins.
var facilityKeys = []string{"leisure", "amenity", "building", "natural", "route"}

var facilityCategories = map[string]map[string]venues.Category{
	"leisure": {
		"fitness_centre":  venues.Gym,
		"sports_centre":   venues.Gym,
		"park":            venues.Park,
		"fitness_station": venues.Park,
		"pitch":           venues.Court,
		"swimming_pool":   venues.Pool,
		"water_park":      venues.Pool,
		"sports_hall":     venues.Salon,
		"stadium":         venues.Stadium,
		"dance":           venues.Dance,
		"golf_course":     venues.Golf,
		"track":           venues.Track,
		"beach_resort":    venues.Beach,
	},
	"amenity": {
		"gym":            venues.Gym,
		"dancing_school": venues.Dance,
	},
	"building": {
		"sports_hall": venues.Salon,
		"stadium":     venues.Stadium,
	},
	"natural": {
		"beach": venues.Beach,
	},
	"route": {
		"hiking":  venues.Route,
		"running": venues.Route,
		"foot":    venues.Route,
		"bicycle": venues.Cycling,
	},
}

type nameRule struct {
	keywords []string
	category venues.Category
}

// nameRules is ordered from the most to the least specific. Keywords are
// lower case, include Turkish spellings and must start a word.
var nameRules = []nameRule{
	{[]string{"crossfit"}, venues.Crossfit},
	{[]string{"yoga", "pilates"}, venues.Yoga},
	{[]string{"boxing", "boks"}, venues.Boxing},
	{[]string{"dance", "dans"}, venues.Dance},
	{[]string{"karate", "judo", "taekwondo", "aikido", "martial", "dövüş"}, venues.MartialArts},
	{[]string{"climbing", "boulder", "tırmanış"}, venues.Climbing},
	{[]string{"tennis", "tenis"}, venues.Tennis},
	{[]string{"basketball", "basketbol"}, venues.Basketball},
	{[]string{"football", "soccer", "futbol", "halı saha"}, venues.Football},
	{[]string{"volleyball", "voleybol"}, venues.Volleyball},
	{[]string{"golf"}, venues.Golf},
	{[]string{"skate", "kaykay"}, venues.Skate},
	{[]string{"swim", "pool", "havuz", "yüzme"}, venues.Pool},
	{[]string{"stadium", "stadyum"}, venues.Stadium},
	{[]string{"koşu", "running track", "atletizm"}, venues.Track},
	{[]string{"bisiklet", "cycling", "velodrom"}, venues.Cycling},
	{[]string{"plaj", "beach"}, venues.Beach},
	{[]string{"park"}, venues.Park},
	{[]string{"gym", "fitness", "spor salonu"}, venues.Gym},
}

// Classify picks exactly one category for a tag set: the sport tag first,
// then facility tags, then the name, then Gym. The result depends only on
// the tag values.
func Classify(tags map[string]string) venues.Category {
	if c, ok := classifySport(tags["sport"]); ok {
		return c
	}
	for _, key := range facilityKeys {
		if c, ok := facilityCategories[key][tags[key]]; ok {
			return c
		}
	}
	if c, ok := classifyName(displayName(tags)); ok {
		return c
	}
	return venues.Gym
}

// classifySport walks a sport value such as "soccer;basketball" left to right.
func classifySport(value string) (venues.Category, bool) {
	for _, token := range strings.Split(value, ";") {
		token = strings.ToLower(strings.TrimSpace(token))
		if c, ok := sportCategories[token]; ok {
			return c, true
		}
	}
	return "", false
}

func classifyName(name string) (venues.Category, bool) {
	if name == "" {
		return "", false
	}
	// Turkish casing maps I to ı, which the English keywords never contain,
	// so both lowerings are tried.
	forms := []string{
		cases.Lower(language.Turkish).String(name),
		cases.Lower(language.Und).String(name),
	}
	for _, rule := range nameRules {
		for _, kw := range rule.keywords {
			for _, form := range forms {
				if startsWord(form, kw) {
					return rule.category, true
				}
			}
		}
	}
	return "", false
}

// startsWord reports whether kw occurs in s at the start of a word, so
// "park" matches "Maçka Parkı" but not "Otopark".
func startsWord(s, kw string) bool {
	for offset := 0; offset <= len(s); {
		i := strings.Index(s[offset:], kw)
		if i < 0 {
			return false
		}
		i += offset
		prev, _ := utf8.DecodeLastRuneInString(s[:i])
		if i == 0 || !(unicode.IsLetter(prev) || unicode.IsDigit(prev)) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		offset = i + size
	}
	return false
}

func displayName(tags map[string]string) string {
	if n := strings.TrimSpace(tags["name"]); n != "" {
		return n
	}
	return strings.TrimSpace(tags["name:en"])
}
