// Package media resolves the images shown for venues that have none of
// their own.
package media

import (
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"go.uber.org/zap"
)

const (
	// Folder holds one placeholder asset per category, named after it.
	Folder = "venues/placeholders"
	// placeholderTransformation crops every placeholder to the card size.
	placeholderTransformation = "c_fill,g_auto,w_640,h_400/f_auto,q_auto"
	// fallbackURL is served when Cloudinary is not configured.
	fallbackURL = "https://res.cloudinary.com/demo/image/upload/" + placeholderTransformation + "/sample.jpg"
)

// Placeholders maps categories to image URLs. URLs are built once at
// construction, so lookups are safe for concurrent use.
type Placeholders struct {
	urls     map[venues.Category]string
	fallback string
}

// NewPlaceholders builds delivery URLs from cld. A nil cld, or a category
// whose URL cannot be built, gets the fallback image.
func NewPlaceholders(cld *cloudinary.Cloudinary, logger *zap.SugaredLogger) *Placeholders {
	p := &Placeholders{
		urls:     make(map[venues.Category]string, len(venues.Categories)),
		fallback: fallbackURL,
	}
	if cld == nil {
		return p
	}

	for _, c := range venues.Categories {
		img, err := cld.Image(Folder + "/" + string(c))
		if err != nil {
			logger.Warnw("failed to build placeholder image", "category", c, "error", err)
			continue
		}
		img.Transformation = placeholderTransformation
		u, err := img.String()
		if err != nil {
			logger.Warnw("failed to render placeholder url", "category", c, "error", err)
			continue
		}
		p.urls[c] = u
	}
	return p
}

func (p *Placeholders) Placeholder(category venues.Category) string {
	if u, ok := p.urls[category]; ok {
		return u
	}
	return p.fallback
}
