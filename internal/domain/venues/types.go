package venues

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/paulmach/orb"
)

var (
	ErrNotFound  = errors.New("venue not found")
	ErrConflict  = errors.New("venue was modified concurrently")
	// ErrInvalidID is returned when a store cannot address the given id.
	ErrInvalidID = errors.New("invalid venue id")
)

// ExternalIDPrefix marks venues that came from the public geodata index.
// Curated ids are UUIDs (or seed-<n>) and never carry it.
const ExternalIDPrefix = "ext-"

type Source string

const (
	SourceCurated  Source = "curated"
	SourceExternal Source = "external"
)

// Coordinate is a WGS84 position.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Point converts to an orb point (longitude first).
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

func FromPoint(p orb.Point) Coordinate {
	return Coordinate{Latitude: p.Lat(), Longitude: p.Lon()}
}

// Venue is a sport-activity place from either source.
type Venue struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     Category   `json:"category"`
	Location     Coordinate `json:"location"`
	Rating       float64    `json:"rating"`
	ReviewCount  int        `json:"review_count"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"image_url"`
	Verified     bool       `json:"verified"`
	Sponsored    bool       `json:"is_sponsored"`
	Address      *string    `json:"address,omitempty"`
	ContactPhone *string    `json:"contact_phone,omitempty"`
	Website      *string    `json:"website,omitempty"`
	Hours        *string    `json:"hours,omitempty"`
	AmenityTags  []string   `json:"amenity_tags"`
	SubmittedBy  *string    `json:"submitted_by,omitempty"`
	Source       Source     `json:"source"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at,omitempty"`
}

func (v *Venue) IsExternal() bool {
	return strings.HasPrefix(v.ID, ExternalIDPrefix)
}

// Submission is the public input for a new curated venue. It enters the
// catalog unverified and unsponsored.
type Submission struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Category    Category    `json:"category" validate:"required,venuecategory"`
	Description string      `json:"description" validate:"max=500"`
	Address     *string     `json:"address,omitempty" validate:"omitempty,max=255"`
	ContactInfo *string     `json:"contact_info,omitempty" validate:"omitempty,max=100"`
	SubmitterID string      `json:"submitter_id" validate:"required,max=64"`
	Area        *Coordinate `json:"area,omitempty"`
}

// Filter narrows a curated listing. A nil or All category matches everything.
type Filter struct {
	Category Category
	Search   string
}

// Matches applies the filter to a single venue the same way the stores do.
func (f Filter) Matches(v *Venue) bool {
	if f.Category != "" && f.Category != All && v.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Name), q) ||
		strings.Contains(strings.ToLower(v.Description), q)
}

// Store is the persistence contract of the curated catalog.
type Store interface {
	List(ctx context.Context, filter Filter) ([]Venue, error)
	Get(ctx context.Context, id string) (*Venue, error)
	Create(ctx context.Context, venue *Venue) error
	Save(ctx context.Context, venue *Venue) error
	Delete(ctx context.Context, id string) error
	// Rate folds one rating into the running average. It reports false when
	// the venue does not exist. Concurrent calls must not lose updates.
	Rate(ctx context.Context, id string, value int) (bool, error)
}
