// Package overpass queries OpenStreetMap through the Overpass API and turns
// the tagged elements it returns into venues.
package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultURL       = "https://overpass-api.de/api/interpreter"
	DefaultTimeout   = 20 * time.Second
	defaultUserAgent = "venue-aggregator/1.0"
	// maxBody caps the response size; dense city centres stay well below it.
	maxBody = 32 << 20
)

// ErrStatus is returned, wrapped with the code, for any non-2xx response.
var ErrStatus = errors.New("overpass: unexpected response status")

// RatingPolicy decides what rating an external venue shows. The index has no
// ratings of its own.
type RatingPolicy string

const (
	// RatingPlaceholder derives a plausible rating from the element id so
	// the same venue always shows the same value.
	RatingPlaceholder RatingPolicy = "placeholder"
	// RatingUnrated leaves rating and review count at zero.
	RatingUnrated RatingPolicy = "unrated"
)

func ParseRatingPolicy(s string) (RatingPolicy, error) {
	switch RatingPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RatingPlaceholder:
		return RatingPlaceholder, nil
	case RatingUnrated:
		return RatingUnrated, nil
	}
	return "", fmt.Errorf("unknown rating policy %q", s)
}

// ImageSource supplies a placeholder image for a category.
type ImageSource interface {
	Placeholder(category venues.Category) string
}

type Config struct {
	URL          string
	Timeout      time.Duration
	UserAgent    string
	RatingPolicy RatingPolicy
}

type Client struct {
	http      *http.Client
	url       string
	userAgent string
	timeout   time.Duration
	policy    RatingPolicy
	images    ImageSource
	logger    *zap.SugaredLogger
	group     singleflight.Group
}

func NewClient(cfg Config, images ImageSource, logger *zap.SugaredLogger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RatingPolicy == "" {
		cfg.RatingPolicy = RatingPlaceholder
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
		policy:    cfg.RatingPolicy,
		images:    images,
		logger:    logger,
	}
}

// Fetch runs q and returns the venues found. On any failure it returns no
// venues and an error; callers treat that as zero external results.
//
// Identical queries in flight at the same time share one request. The
// shared request is bounded by the client timeout, and each caller still
// gives up when its own ctx ends.
func (c *Client) Fetch(ctx context.Context, q Query) ([]venues.Venue, error) {
	ch := c.group.DoChan(q.key(), func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.fetch(fetchCtx, q)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("overpass query abandoned: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.([]venues.Venue)
		out := make([]venues.Venue, len(shared))
		copy(out, shared)
		return out, nil
	}
}

type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *latLon           `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type response struct {
	Elements []element `json:"elements"`
}

func (c *Client) fetch(ctx context.Context, q Query) ([]venues.Venue, error) {
	form := url.Values{"data": {q.String()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var payload response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode overpass response: %w", err)
	}

	out, dropped := c.normalize(payload.Elements)
	c.logger.Debugw("overpass query finished",
		"category", q.Category,
		"radius", q.Radius,
		"elements", len(payload.Elements),
		"venues", len(out),
		"dropped", dropped,
		"took", time.Since(start),
	)
	return out, nil
}

// normalize drops unnamed or unplaced elements and any repeat of an element
// already seen in this response. Nodes and ways number independently, so an
// element is identified by its type and id together.
func (c *Client) normalize(elements []element) ([]venues.Venue, int) {
	seen := make(map[string]struct{}, len(elements))
	out := make([]venues.Venue, 0, len(elements))
	dropped := 0

	for _, el := range elements {
		key := el.key()
		if _, dup := seen[key]; dup {
			dropped++
			continue
		}
		name := displayName(el.Tags)
		loc, ok := el.location()
		if name == "" || !ok {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c.toVenue(el, name, loc))
	}
	return out, dropped
}

// key is "<type>-<id>", e.g. "way-123".
func (el element) key() string {
	typ := el.Type
	if typ == "" {
		typ = "node"
	}
	return typ + "-" + strconv.FormatInt(el.ID, 10)
}

func (el element) location() (venues.Coordinate, bool) {
	var loc venues.Coordinate
	switch {
	case el.Lat != nil && el.Lon != nil:
		loc = venues.Coordinate{Latitude: *el.Lat, Longitude: *el.Lon}
	case el.Center != nil:
		loc = venues.Coordinate{Latitude: el.Center.Lat, Longitude: el.Center.Lon}
	default:
		return loc, false
	}
	return loc, loc.Valid()
}

func (c *Client) toVenue(el element, name string, loc venues.Coordinate) venues.Venue {
	tags := el.Tags
	category := Classify(tags)

	v := venues.Venue{
		ID:           venues.ExternalIDPrefix + el.key(),
		Name:         name,
		Category:     category,
		Location:     loc,
		Description:  tags["description"],
		Verified:     true,
		Address:      address(tags),
		ContactPhone: firstTag(tags, "phone", "contact:phone"),
		Website:      firstTag(tags, "website", "contact:website"),
		Hours:        firstTag(tags, "opening_hours"),
		AmenityTags:  amenities(tags),
		Source:       venues.SourceExternal,
	}
	if c.images != nil {
		v.ImageURL = c.images.Placeholder(category)
	}
	if c.policy == RatingPlaceholder {
		v.Rating, v.ReviewCount = placeholderRating(el.key())
	}
	return v
}

// placeholderRating is stable per element: 3.5 to 5.0 in tenths, 5 to 204
// reviews.
func placeholderRating(key string) (float64, int) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	seed := h.Sum64()
	r := rand.New(rand.NewPCG(seed, seed>>1|1))

	rating := 3.5 + r.Float64()*1.5
	return math.Round(rating*10) / 10, 5 + r.IntN(200)
}

func firstTag(tags map[string]string, keys ...string) *string {
	for _, k := range keys {
		if v := strings.TrimSpace(tags[k]); v != "" {
			return &v
		}
	}
	return nil
}

func address(tags map[string]string) *string {
	if full := firstTag(tags, "addr:full"); full != nil {
		return full
	}
	var parts []string
	street := strings.TrimSpace(tags["addr:street"] + " " + tags["addr:housenumber"])
	if street != "" {
		parts = append(parts, street)
	}
	for _, k := range []string{"addr:suburb", "addr:district", "addr:city"} {
		if v := strings.TrimSpace(tags[k]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	a := strings.Join(parts, ", ")
	return &a
}

// amenityKeys lists the yes/no tags surfaced as amenities, in display order.
var amenityKeys = []struct {
	key   string
	label string
}{
	{"indoor", "indoor"},
	{"covered", "covered"},
	{"lit", "lighting"},
	{"shower", "showers"},
	{"changing_room", "changing rooms"},
	{"toilets", "toilets"},
	{"drinking_water", "drinking water"},
	{"wheelchair", "wheelchair access"},
	{"parking", "parking"},
}

func amenities(tags map[string]string) []string {
	out := []string{}
	for _, a := range amenityKeys {
		if tags[a.key] == "yes" {
			out = append(out, a.label)
		}
	}
	if tags["fee"] == "no" {
		out = append(out, "free")
	}
	if s := tags["surface"]; s != "" {
		out = append(out, "surface:"+s)
	}
	return out
}
