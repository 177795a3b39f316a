package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeImages struct{}

func (fakeImages) Placeholder(c venues.Category) string {
	return "https://img.test/" + string(c) + ".jpg"
}

const samplePayload = `{
  "version": 0.6,
  "elements": [
    {"type": "node", "id": 101, "lat": 41.01, "lon": 28.98,
     "tags": {"name": "Moda Tennis", "sport": "tennis", "lit": "yes", "opening_hours": "08:00-22:00"}},
    {"type": "node", "id": 101, "lat": 41.02, "lon": 28.99,
     "tags": {"name": "Moda Tennis (duplicate)", "sport": "tennis"}},
    {"type": "way", "id": 202,
     "center": {"lat": 41.03, "lon": 29.00},
     "tags": {"name:en": "City Pool", "leisure": "swimming_pool", "addr:street": "Bağdat Cd.", "addr:housenumber": "12", "addr:city": "İstanbul"}},
    {"type": "node", "id": 303, "lat": 41.04, "lon": 29.01,
     "tags": {"leisure": "pitch"}},
    {"type": "way", "id": 404,
     "tags": {"name": "Nowhere Gym", "leisure": "fitness_centre"}},
    {"type": "node", "id": 505, "lat": 95.0, "lon": 29.01,
     "tags": {"name": "Off The Map", "leisure": "fitness_centre"}}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg Config) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.URL = srv.URL
	return NewClient(cfg, fakeImages{}, zap.NewNop().Sugar())
}

func TestFetchNormalizesAndDeduplicates(t *testing.T) {
	var gotQuery, gotAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		gotQuery = r.PostForm.Get("data")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}, Config{UserAgent: "test-agent"})

	q := BuildQuery(venues.All, istanbul, 3000)
	got, err := c.Fetch(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, q.String(), gotQuery)
	assert.Equal(t, "test-agent", gotAgent)

	require.Len(t, got, 2)

	tennis := got[0]
	assert.Equal(t, "ext-node-101", tennis.ID)
	assert.Equal(t, "Moda Tennis", tennis.Name)
	assert.Equal(t, venues.Tennis, tennis.Category)
	assert.Equal(t, venues.Coordinate{Latitude: 41.01, Longitude: 28.98}, tennis.Location)
	assert.True(t, tennis.Verified)
	assert.False(t, tennis.Sponsored)
	assert.Equal(t, venues.SourceExternal, tennis.Source)
	assert.Equal(t, "https://img.test/tennis.jpg", tennis.ImageURL)
	assert.Equal(t, []string{"lighting"}, tennis.AmenityTags)
	require.NotNil(t, tennis.Hours)
	assert.Equal(t, "08:00-22:00", *tennis.Hours)

	pool := got[1]
	assert.Equal(t, "ext-way-202", pool.ID)
	assert.Equal(t, "City Pool", pool.Name)
	assert.Equal(t, venues.Pool, pool.Category)
	assert.Equal(t, venues.Coordinate{Latitude: 41.03, Longitude: 29.00}, pool.Location)
	require.NotNil(t, pool.Address)
	assert.Equal(t, "Bağdat Cd. 12, İstanbul", *pool.Address)

	for _, v := range got {
		assert.GreaterOrEqual(t, v.Rating, 3.5)
		assert.LessOrEqual(t, v.Rating, 5.0)
		assert.GreaterOrEqual(t, v.ReviewCount, 5)
		assert.LessOrEqual(t, v.ReviewCount, 204)
	}
}

func TestFetchKeepsNodeAndWaySharingANumber(t *testing.T) {
	const payload = `{"elements": [
    {"type": "node", "id": 7, "lat": 41.01, "lon": 28.98, "tags": {"name": "Corner Court", "sport": "basketball"}},
    {"type": "way", "id": 7, "center": {"lat": 41.02, "lon": 28.99}, "tags": {"name": "Riverside Pool", "leisure": "swimming_pool"}},
    {"type": "way", "id": 7, "center": {"lat": 41.02, "lon": 28.99}, "tags": {"name": "Riverside Pool"}}
  ]}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}, Config{})

	got, err := c.Fetch(context.Background(), BuildQuery(venues.All, istanbul, 3000))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ext-node-7", got[0].ID)
	assert.Equal(t, "ext-way-7", got[1].ID)
	assert.True(t, got[1].IsExternal())
}

func TestFetchPlaceholderRatingsAreStable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}, Config{})

	q := BuildQuery(venues.All, istanbul, 3000)
	first, err := c.Fetch(context.Background(), q)
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFetchUnratedPolicy(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}, Config{RatingPolicy: RatingUnrated})

	got, err := c.Fetch(context.Background(), BuildQuery(venues.All, istanbul, 3000))
	require.NoError(t, err)
	for _, v := range got {
		assert.Zero(t, v.Rating)
		assert.Zero(t, v.ReviewCount)
	}
}

func TestFetchFailures(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}, Config{})

		got, err := c.Fetch(context.Background(), BuildQuery(venues.Gym, istanbul, 1000))
		assert.Empty(t, got)
		assert.ErrorIs(t, err, ErrStatus)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("undecodable body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>busy</html>`))
		}, Config{})

		got, err := c.Fetch(context.Background(), BuildQuery(venues.Gym, istanbul, 1000))
		assert.Empty(t, got)
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}, Config{Timeout: 50 * time.Millisecond})
		defer close(release)

		start := time.Now()
		got, err := c.Fetch(context.Background(), BuildQuery(venues.Gym, istanbul, 1000))
		assert.Empty(t, got)
		assert.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("caller gives up", func(t *testing.T) {
		release := make(chan struct{})
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}, Config{Timeout: 5 * time.Second})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		got, err := c.Fetch(ctx, BuildQuery(venues.Gym, istanbul, 1000))
		assert.Empty(t, got)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestFetchCollapsesIdenticalQueries(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		_, _ = w.Write([]byte(samplePayload))
	}, Config{})

	q := BuildQuery(venues.All, istanbul, 3000)
	var wg sync.WaitGroup
	results := make([][]venues.Venue, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := c.Fetch(context.Background(), q)
			assert.NoError(t, err)
			results[i] = got
		}(i)
	}

	require.Eventually(t, func() bool { return atomic.LoadInt32(&calls) == 1 }, time.Second, 5*time.Millisecond)
	// Give the other callers time to join the in-flight request.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Len(t, r, 2)
	}
}

func TestParseRatingPolicy(t *testing.T) {
	p, err := ParseRatingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RatingPlaceholder, p)

	p, err = ParseRatingPolicy(" Unrated ")
	require.NoError(t, err)
	assert.Equal(t, RatingUnrated, p)

	_, err = ParseRatingPolicy("random")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "random"))
}
