package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

const (
	venuesTable = "venues"
	// casAttempts bounds the optimistic retry loop in Rate.
	casAttempts = 8
)

// SupabaseRepository talks to the same venues table through PostgREST.
// PostgREST has no single-statement increment, so Rate uses a
// compare-and-swap on review_count instead.
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(client *supabase.Client) Store {
	return &SupabaseRepository{client: client}
}

type supabaseRow struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Verified     bool      `json:"verified"`
	IsSponsored  bool      `json:"is_sponsored"`
	Address      *string   `json:"address"`
	ContactPhone *string   `json:"contact_phone"`
	Website      *string   `json:"website"`
	Hours        *string   `json:"hours"`
	AmenityTags  []string  `json:"amenity_tags"`
	SubmittedBy  *string   `json:"submitted_by"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

func (row supabaseRow) venue() Venue {
	return Venue{
		ID:           row.ID,
		Name:         row.Name,
		Category:     Category(row.Category),
		Location:     Coordinate{Latitude: row.Latitude, Longitude: row.Longitude},
		Rating:       row.Rating,
		ReviewCount:  row.ReviewCount,
		Description:  row.Description,
		ImageURL:     row.ImageURL,
		Verified:     row.Verified,
		Sponsored:    row.IsSponsored,
		Address:      row.Address,
		ContactPhone: row.ContactPhone,
		Website:      row.Website,
		Hours:        row.Hours,
		AmenityTags:  row.AmenityTags,
		SubmittedBy:  row.SubmittedBy,
		Source:       SourceCurated,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// insertPayload leaves the timestamps to the column defaults.
func insertPayload(v *Venue) map[string]interface{} {
	tags := v.AmenityTags
	if tags == nil {
		tags = []string{}
	}
	return map[string]interface{}{
		"id":            v.ID,
		"name":          v.Name,
		"category":      string(v.Category),
		"latitude":      v.Location.Latitude,
		"longitude":     v.Location.Longitude,
		"rating":        v.Rating,
		"review_count":  v.ReviewCount,
		"description":   v.Description,
		"image_url":     v.ImageURL,
		"verified":      v.Verified,
		"is_sponsored":  v.Sponsored,
		"address":       v.Address,
		"contact_phone": v.ContactPhone,
		"website":       v.Website,
		"hours":         v.Hours,
		"amenity_tags":  tags,
		"submitted_by":  v.SubmittedBy,
	}
}

func decodeRows(data []byte) ([]supabaseRow, error) {
	var rows []supabaseRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode venues payload: %w", err)
	}
	return rows, nil
}

func (r *SupabaseRepository) List(_ context.Context, filter Filter) ([]Venue, error) {
	q := r.client.From(venuesTable).Select("*", "exact", false)
	if filter.Category != "" && filter.Category != All {
		q = q.Eq("category", string(filter.Category))
	}

	data, _, err := q.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}

	out := make([]Venue, 0, len(rows))
	for _, row := range rows {
		v := row.venue()
		if filter.Matches(&v) {
			out = append(out, v)
		}
	}
	SortCurated(out)
	return out, nil
}

func (r *SupabaseRepository) Get(_ context.Context, id string) (*Venue, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	data, _, err := r.client.From(venuesTable).Select("*", "exact", false).Eq("id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get venue %s: %w", id, err)
	}
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	v := rows[0].venue()
	return &v, nil
}

func (r *SupabaseRepository) Create(_ context.Context, venue *Venue) error {
	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}
	data, _, err := r.client.From(venuesTable).
		Insert(insertPayload(venue), false, "", "representation", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert venue: %w", err)
	}
	return r.refresh(venue, data)
}

func (r *SupabaseRepository) Save(_ context.Context, venue *Venue) error {
	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}
	if _, err := uuid.Parse(venue.ID); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidID, venue.ID)
	}
	data, _, err := r.client.From(venuesTable).
		Insert(insertPayload(venue), true, "id", "representation", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save venue: %w", err)
	}
	return r.refresh(venue, data)
}

func (r *SupabaseRepository) Delete(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	data, _, err := r.client.From(venuesTable).Delete("representation", "").Eq("id", id).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	rows, err := decodeRows(data)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

// Rate reads the row and writes the new average only if review_count is
// still the value it read. A lost race retries from a fresh read.
func (r *SupabaseRepository) Rate(ctx context.Context, id string, value int) (bool, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		current, err := r.Get(ctx, id)
		if err != nil {
			if err == ErrNotFound {
				return false, nil
			}
			return false, err
		}

		rating, count := RunningAverage(current.Rating, current.ReviewCount, value)
		patch := map[string]interface{}{
			"rating":       rating,
			"review_count": count,
		}
		data, _, err := r.client.From(venuesTable).
			Update(patch, "representation", "").
			Eq("id", id).
			Eq("review_count", strconv.Itoa(current.ReviewCount)).
			Execute()
		if err != nil {
			return false, fmt.Errorf("failed to rate venue: %w", err)
		}
		rows, err := decodeRows(data)
		if err != nil {
			return false, err
		}
		if len(rows) == 1 {
			return true, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 15 * time.Millisecond):
		}
	}
	return false, ErrConflict
}

func (r *SupabaseRepository) refresh(venue *Venue, data []byte) error {
	rows, err := decodeRows(data)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		venue.CreatedAt = rows[0].CreatedAt
		venue.UpdatedAt = rows[0].UpdatedAt
	}
	venue.Source = SourceCurated
	return nil
}
