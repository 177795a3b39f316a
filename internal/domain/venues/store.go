package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const venueColumns = `
	id::text, name, category, latitude, longitude, rating, review_count,
	description, image_url, verified, is_sponsored, address, contact_phone,
	website, hours, amenity_tags, submitted_by, created_at, updated_at`

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// List returns curated venues, optionally filtered by category and by a
// case-insensitive match on name or description, sponsored first and then
// by rating.
func (r *Repository) List(ctx context.Context, filter Filter) ([]Venue, error) {
	var (
		where      []string
		args       []interface{}
		argCounter = 1
	)

	if filter.Category != "" && filter.Category != All {
		where = append(where, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, string(filter.Category))
		argCounter++
	}

	if q := strings.TrimSpace(filter.Search); q != "" {
		where = append(where, searchClause(argCounter))
		args = append(args, escapeLike(q))
		argCounter++
	}

	query := "SELECT" + venueColumns + " FROM venues"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY is_sponsored DESC, rating DESC, created_at ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying venues: %w", err)
	}
	defer rows.Close()

	var out []Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning venue row: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows venues: %w", err)
	}

	return out, nil
}

// Get retrieves a curated venue by its id.
func (r *Repository) Get(ctx context.Context, id string) (*Venue, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	row := r.db.QueryRow(ctx, "SELECT"+venueColumns+" FROM venues WHERE id = $1", id)
	v, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// Create inserts a new curated venue. The id is assigned here when empty.
func (r *Repository) Create(ctx context.Context, venue *Venue) error {
	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}

	const query = `
	INSERT INTO venues (
		id, name, category, latitude, longitude, rating, review_count,
		description, image_url, verified, is_sponsored, address, contact_phone,
		website, hours, amenity_tags, submitted_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11, $12, $13,
		$14, $15, $16, $17
	)
	RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, venueArgs(venue)...).Scan(&venue.CreatedAt, &venue.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting venue: %w", err)
	}
	venue.Source = SourceCurated
	return nil
}

// Save is the operator upsert: every column is overwritten.
func (r *Repository) Save(ctx context.Context, venue *Venue) error {
	if venue.ID == "" {
		venue.ID = uuid.New().String()
	}
	if _, err := uuid.Parse(venue.ID); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidID, venue.ID)
	}

	const query = `
	INSERT INTO venues (
		id, name, category, latitude, longitude, rating, review_count,
		description, image_url, verified, is_sponsored, address, contact_phone,
		website, hours, amenity_tags, submitted_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7,
		$8, $9, $10, $11, $12, $13,
		$14, $15, $16, $17
	)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		category = EXCLUDED.category,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		rating = EXCLUDED.rating,
		review_count = EXCLUDED.review_count,
		description = EXCLUDED.description,
		image_url = EXCLUDED.image_url,
		verified = EXCLUDED.verified,
		is_sponsored = EXCLUDED.is_sponsored,
		address = EXCLUDED.address,
		contact_phone = EXCLUDED.contact_phone,
		website = EXCLUDED.website,
		hours = EXCLUDED.hours,
		amenity_tags = EXCLUDED.amenity_tags,
		submitted_by = EXCLUDED.submitted_by,
		updated_at = NOW()
	RETURNING created_at, updated_at
	`

	if err := r.db.QueryRow(ctx, query, venueArgs(venue)...).Scan(&venue.CreatedAt, &venue.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save venue: %w", err)
	}
	venue.Source = SourceCurated
	return nil
}

// Delete removes the venue with the given id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	ct, err := r.db.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Rate recomputes the running average in a single statement, so the
// read-modify-write happens under the row lock and concurrent raters
// cannot overwrite each other.
func (r *Repository) Rate(ctx context.Context, id string, value int) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	const query = `
	UPDATE venues
	SET rating = (rating * review_count + $2) / (review_count + 1),
	    review_count = review_count + 1,
	    updated_at = NOW()
	WHERE id = $1
	`

	ct, err := r.db.Exec(ctx, query, id, float64(value))
	if err != nil {
		return false, fmt.Errorf("failed to rate venue: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func venueArgs(v *Venue) []interface{} {
	tags := v.AmenityTags
	if tags == nil {
		tags = []string{}
	}
	return []interface{}{
		v.ID,
		v.Name,
		string(v.Category),
		v.Location.Latitude,
		v.Location.Longitude,
		v.Rating,
		v.ReviewCount,
		v.Description,
		v.ImageURL,
		v.Verified,
		v.Sponsored,
		v.Address,
		v.ContactPhone,
		v.Website,
		v.Hours,
		tags,
		v.SubmittedBy,
	}
}

func scanVenue(row pgx.Row) (*Venue, error) {
	var (
		v        Venue
		category string
	)
	err := row.Scan(
		&v.ID,
		&v.Name,
		&category,
		&v.Location.Latitude,
		&v.Location.Longitude,
		&v.Rating,
		&v.ReviewCount,
		&v.Description,
		&v.ImageURL,
		&v.Verified,
		&v.Sponsored,
		&v.Address,
		&v.ContactPhone,
		&v.Website,
		&v.Hours,
		&v.AmenityTags,
		&v.SubmittedBy,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Category = Category(category)
	v.Source = SourceCurated
	return &v, nil
}

// searchClause matches the escaped search text as a literal substring, the
// same way Filter.Matches does.
func searchClause(n int) string {
	return fmt.Sprintf(
		`(name ILIKE '%%' || $%d || '%%' ESCAPE '\' OR description ILIKE '%%' || $%d || '%%' ESCAPE '\')`,
		n, n,
	)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
