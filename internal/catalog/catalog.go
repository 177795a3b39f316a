// Package catalog serves the curated venue catalog on top of a venues.Store.
// Reads degrade to the built-in seed venues when the store is unreachable,
// and every successful write is signalled to the change notifier.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb/geo"
	"go.uber.org/zap"
)

var (
	ErrInvalidRating     = errors.New("rating must be an integer from 1 to 5")
	ErrInvalidSubmission = errors.New("invalid venue submission")
	ErrInvalidVenue      = errors.New("invalid venue")
)

const (
	DefaultQueryTimeout    = 5 * time.Second
	DefaultPlacementRadius = 750.0
)

// IstanbulCenter is the default area for submissions without one.
var IstanbulCenter = venues.Coordinate{Latitude: 41.0082, Longitude: 28.9784}

// Notifier is told that the curated catalog changed.
type Notifier interface {
	Notify()
}

// ImageSource supplies the image of a venue submitted without one.
type ImageSource interface {
	Placeholder(category venues.Category) string
}

type Config struct {
	QueryTimeout    time.Duration
	PlacementRadius float64 // metres
	DefaultCenter   venues.Coordinate
}

// Result is a curated listing. Degraded means the store failed and Venues is
// the seed list.
type Result struct {
	Venues   []venues.Venue
	Degraded bool
	Err      error
}

type Catalog struct {
	store    venues.Store
	cfg      Config
	images   ImageSource
	notifier Notifier
	validate *validator.Validate
	logger   *zap.SugaredLogger
	// random returns a value in [0, 1).
	random func() float64
}

func New(store venues.Store, cfg Config, images ImageSource, logger *zap.SugaredLogger) *Catalog {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}
	if cfg.PlacementRadius <= 0 {
		cfg.PlacementRadius = DefaultPlacementRadius
	}
	if cfg.DefaultCenter == (venues.Coordinate{}) {
		cfg.DefaultCenter = IstanbulCenter
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := venues.RegisterValidations(v); err != nil {
		logger.Fatalw("failed to register venue validations", "error", err)
	}

	return &Catalog{
		store:    store,
		cfg:      cfg,
		images:   images,
		validate: v,
		logger:   logger,
		random:   rand.Float64,
	}
}

// SetNotifier registers n to be told about every successful write. It must
// be called before the catalog is shared.
func (c *Catalog) SetNotifier(n Notifier) {
	c.notifier = n
}

func (c *Catalog) notify() {
	if c.notifier != nil {
		c.notifier.Notify()
	}
}

// Query lists curated venues for filter, sponsored first and then by rating.
// A store failure is logged and answered with the seed venues, filtered the
// same way.
func (c *Catalog) Query(ctx context.Context, filter venues.Filter) Result {
	qctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	vs, err := bounded(qctx, func(ctx context.Context) ([]venues.Venue, error) {
		return c.store.List(ctx, filter)
	})
	if err == nil {
		return Result{Venues: vs}
	}

	if ctx.Err() != nil {
		c.logger.Debugw("curated query abandoned", "error", err)
	} else {
		c.logger.Warnw("curated store unavailable, serving seed venues",
			"category", filter.Category,
			"error", err,
		)
	}
	return Result{Venues: venues.Seed(filter), Degraded: true, Err: err}
}

// All returns every curated venue straight from the store, with no seed
// fallback.
func (c *Catalog) All(ctx context.Context) ([]venues.Venue, error) {
	qctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()
	return bounded(qctx, func(ctx context.Context) ([]venues.Venue, error) {
		return c.store.List(ctx, venues.Filter{Category: venues.All})
	})
}

func (c *Catalog) Get(ctx context.Context, id string) (*venues.Venue, error) {
	qctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()
	return bounded(qctx, func(ctx context.Context) (*venues.Venue, error) {
		return c.store.Get(ctx, id)
	})
}

// Submit turns a public submission into an unverified, unsponsored venue
// placed at a random point near its declared area.
func (c *Catalog) Submit(ctx context.Context, sub venues.Submission) (*venues.Venue, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	if err := c.validate.Struct(sub); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}

	area := c.cfg.DefaultCenter
	if sub.Area != nil {
		area = *sub.Area
	}
	submitter := sub.SubmitterID

	v := &venues.Venue{
		Name:         sub.Name,
		Category:     sub.Category,
		Location:     c.place(area),
		Description:  strings.TrimSpace(sub.Description),
		Address:      sub.Address,
		ContactPhone: sub.ContactInfo,
		AmenityTags:  []string{},
		SubmittedBy:  &submitter,
	}
	if c.images != nil {
		v.ImageURL = c.images.Placeholder(v.Category)
	}

	wctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()
	if err := boundedErr(wctx, func(ctx context.Context) error { return c.store.Create(ctx, v) }); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	c.logger.Infow("venue submitted", "id", v.ID, "category", v.Category, "submitter", submitter)
	c.notify()
	return v, nil
}

// place picks a point uniformly within the placement radius of center.
func (c *Catalog) place(center venues.Coordinate) venues.Coordinate {
	dist := c.cfg.PlacementRadius * math.Sqrt(c.random())
	bearing := 360 * c.random()
	return venues.FromPoint(geo.PointAtBearingAndDistance(center.Point(), bearing, dist))
}

// Rate folds value into the venue's running average. It reports false for
// an unknown venue.
func (c *Catalog) Rate(ctx context.Context, id string, value int) (bool, error) {
	if value < 1 || value > 5 {
		return false, ErrInvalidRating
	}

	wctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()
	ok, err := bounded(wctx, func(ctx context.Context) (bool, error) {
		return c.store.Rate(ctx, id, value)
	})
	if err != nil {
		return false, err
	}
	if ok {
		c.notify()
	}
	return ok, nil
}

// Upsert is operator entry: the venue is stored as given, including its
// verified and sponsored flags.
func (c *Catalog) Upsert(ctx context.Context, v *venues.Venue) error {
	switch {
	case v.IsExternal():
		return fmt.Errorf("%w: curated ids must not start with %q", ErrInvalidVenue, venues.ExternalIDPrefix)
	case strings.TrimSpace(v.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidVenue)
	case !v.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidVenue, v.Category)
	case !v.Location.Valid():
		return fmt.Errorf("%w: location is out of range", ErrInvalidVenue)
	case v.Rating < 0 || v.Rating > 5 || v.ReviewCount < 0:
		return fmt.Errorf("%w: rating must be within 0-5 with a non-negative review count", ErrInvalidVenue)
	}

	wctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()
	if err := boundedErr(wctx, func(ctx context.Context) error { return c.store.Save(ctx, v) }); err != nil {
		return err
	}
	c.notify()
	return nil
}

func (c *Catalog) Remove(ctx context.Context, id string) error {
	wctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()
	if err := boundedErr(wctx, func(ctx context.Context) error { return c.store.Delete(ctx, id) }); err != nil {
		return err
	}
	c.notify()
	return nil
}

// bounded runs fn and stops waiting once ctx is done, even when the store
// ignores ctx (PostgREST calls carry no context). A call that outlives ctx
// keeps running in the background and its result is dropped.
func bounded[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v: v, err: err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func boundedErr(ctx context.Context, fn func(context.Context) error) error {
	_, err := bounded(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
