package venues

func strPtr(s string) *string { return &s }

// seedVenues is the built-in catalog served while the store is unreachable.
var seedVenues = []Venue{
	{
		ID:          "seed-1",
		Name:        "Maçka Demokrasi Parkı Spor Alanı",
		Category:    Park,
		Location:    Coordinate{Latitude: 41.0436, Longitude: 28.9943},
		Rating:      4.6,
		ReviewCount: 182,
		Description: "Outdoor calisthenics bars and a running loop inside Maçka Park.",
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/venues/park.jpg",
		Verified:    true,
		Sponsored:   true,
		Address:     strPtr("Maçka, Şişli/İstanbul"),
		Hours:       strPtr("24/7"),
		AmenityTags: []string{"outdoor", "free", "lighting"},
	},
	{
		ID:          "seed-2",
		Name:        "Bebek Sahil Koşu Yolu",
		Category:    Route,
		Location:    Coordinate{Latitude: 41.0769, Longitude: 29.0436},
		Rating:      4.8,
		ReviewCount: 240,
		Description: "Seaside running route along the Bosphorus from Bebek to Arnavutköy.",
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/venues/route.jpg",
		Verified:    true,
		AmenityTags: []string{"outdoor", "sea view"},
	},
	{
		ID:           "seed-3",
		Name:         "Kadıköy CrossFit Box",
		Category:     Crossfit,
		Location:     Coordinate{Latitude: 40.9903, Longitude: 29.0294},
		Rating:       4.7,
		ReviewCount:  96,
		Description:  "Coached CrossFit classes with an open gym slot every evening.",
		ImageURL:     "https://res.cloudinary.com/demo/image/upload/venues/crossfit.jpg",
		Verified:     true,
		Address:      strPtr("Caferağa Mah., Kadıköy/İstanbul"),
		ContactPhone: strPtr("+90 216 000 00 01"),
		Hours:        strPtr("07:00-22:00"),
		AmenityTags:  []string{"showers", "lockers", "coaching"},
	},
	{
		ID:          "seed-4",
		Name:        "Beşiktaş Fitness Center",
		Category:    Gym,
		Location:    Coordinate{Latitude: 41.0422, Longitude: 29.0067},
		Rating:      4.4,
		ReviewCount: 311,
		Description: "Full weights floor, cardio zone and group classes.",
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/venues/gym.jpg",
		Verified:    true,
		Address:     strPtr("Sinanpaşa Mah., Beşiktaş/İstanbul"),
		Website:     strPtr("https://example.com/besiktas-fitness"),
		Hours:       strPtr("06:00-23:00"),
		AmenityTags: []string{"showers", "parking", "sauna"},
	},
	{
		ID:          "seed-5",
		Name:        "Caddebostan Plajı Voleybol Sahası",
		Category:    Volleyball,
		Location:    Coordinate{Latitude: 40.9622, Longitude: 29.0631},
		Rating:      4.3,
		ReviewCount: 57,
		Description: "Beach volleyball courts open through the summer season.",
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/venues/volleyball.jpg",
		Verified:    true,
		AmenityTags: []string{"outdoor", "beach"},
	},
	{
		ID:          "seed-6",
		Name:        "Enka Spor Tesisleri Yüzme Havuzu",
		Category:    Pool,
		Location:    Coordinate{Latitude: 41.0615, Longitude: 29.0283},
		Rating:      4.5,
		ReviewCount: 128,
		Description: "Olympic size indoor pool with lane booking.",
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/venues/pool.jpg",
		Verified:    true,
		Hours:       strPtr("07:00-21:00"),
		AmenityTags: []string{"indoor", "showers", "lockers"},
	},
	{
		ID:          "seed-7",
		Name:        "Moda Tenis Kulübü",
		Category:    Tennis,
		Location:    Coordinate{Latitude: 40.9813, Longitude: 29.0259},
		Rating:      4.2,
		ReviewCount: 44,
		Description: "Three clay courts with evening lighting.",
		ImageURL:    "https://res.cloudinary.com/demo/image/upload/venues/tennis.jpg",
		Verified:    true,
		AmenityTags: []string{"lighting", "coaching"},
	},
}

// Seed returns the built-in venues matching filter, sorted like a store
// listing. The result is a fresh copy on every call.
func Seed(filter Filter) []Venue {
	out := make([]Venue, 0, len(seedVenues))
	for i := range seedVenues {
		if filter.Matches(&seedVenues[i]) {
			v := clone(&seedVenues[i])
			v.Source = SourceCurated
			out = append(out, v)
		}
	}
	SortCurated(out)
	return out
}
