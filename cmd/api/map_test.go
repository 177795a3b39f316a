package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapBody mirrors mapResponse for decoding; State marshals as text.
type mapBody struct {
	Generation  uint64 `json:"generation"`
	State       string `json:"state"`
	Diagnostics struct {
		ExternalFailed  bool   `json:"external_failed"`
		CuratedDegraded bool   `json:"curated_degraded"`
		Outcome         string `json:"outcome"`
	} `json:"diagnostics"`
	Venues []struct {
		ID         string  `json:"id"`
		Source     string  `json:"source"`
		Sponsored  bool    `json:"is_sponsored"`
		DistanceKm float64 `json:"distance_from_user_km"`
	} `json:"venues"`
}

func (b mapBody) ids() []string {
	out := make([]string, len(b.Venues))
	for i, v := range b.Venues {
		out[i] = v.ID
	}
	return out
}

var osmVenues = []venues.Venue{
	{ID: "ext-100", Name: "Fenerbahce Park", Category: venues.Park, Source: venues.SourceExternal,
		Location: venues.Coordinate{Latitude: 40.97, Longitude: 29.04}},
	{ID: "ext-200", Name: "Caddebostan Courts", Category: venues.Court, Source: venues.SourceExternal,
		Location: venues.Coordinate{Latitude: 40.995, Longitude: 29.031}},
}

func TestNearbyVenuesHandler(t *testing.T) {
	app := newTestApplication(t, testStore(), fakeExternal{venues: osmVenues})

	rr := executeRequest(app, http.MethodGet, "/v1/map/nearby?lat=40.99&lon=29.03&radius=3000", "", false)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decodeData[mapBody](t, rr)
	assert.Equal(t, "ready", body.State)
	assert.Equal(t, "ok", body.Diagnostics.Outcome)
	assert.Equal(t, []string{"v-park", "v-pool", "v-gym", "ext-100", "ext-200"}, body.ids())
	for _, v := range body.Venues {
		assert.Greater(t, v.DistanceKm, -1e-9)
	}
	assert.InDelta(t, 0, body.Venues[2].DistanceKm, 1e-6, "the gym sits on the centre")

	rr = executeRequest(app, http.MethodGet, "/v1/map/nearby?lat=40.99&lon=29.03&sort=distance", "", false)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeData[mapBody](t, rr)
	require.Len(t, body.Venues, 5)
	assert.Equal(t, "v-gym", body.Venues[0].ID)
	for i := 1; i < len(body.Venues); i++ {
		assert.LessOrEqual(t, body.Venues[i-1].DistanceKm, body.Venues[i].DistanceKm)
	}
}

func TestNearbyVenuesHandlerExternalFailure(t *testing.T) {
	app := newTestApplication(t, testStore(), fakeExternal{err: errors.New("overpass: 504")})

	rr := executeRequest(app, http.MethodGet, "/v1/map/nearby?lat=40.99&lon=29.03", "", false)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeData[mapBody](t, rr)
	assert.Equal(t, "partial_failure", body.State)
	assert.True(t, body.Diagnostics.ExternalFailed)
	assert.Equal(t, "degraded", body.Diagnostics.Outcome)
	assert.Equal(t, []string{"v-park", "v-pool", "v-gym"}, body.ids())
}

func TestNearbyVenuesHandlerRejectsBadQuery(t *testing.T) {
	app := newTestApplication(t, testStore(), fakeExternal{})

	for _, target := range []string{
		"/v1/map/nearby",
		"/v1/map/nearby?lat=40.99",
		"/v1/map/nearby?lat=100&lon=29",
		"/v1/map/nearby?lat=40.99&lon=29.03&radius=0",
		"/v1/map/nearby?lat=40.99&lon=29.03&category=curling",
	} {
		rr := executeRequest(app, http.MethodGet, target, "", false)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

// nextSnapshot reads events until one satisfies accept.
func nextSnapshot(t *testing.T, events <-chan mapBody, accept func(mapBody) bool) mapBody {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case b, ok := <-events:
			require.True(t, ok, "stream ended")
			if accept(b) {
				return b
			}
		case <-timeout:
			t.Fatal("no matching snapshot before timeout")
		}
	}
}

func TestLiveMapHandler(t *testing.T) {
	app := newTestApplication(t, testStore(), fakeExternal{venues: osmVenues})
	srv := httptest.NewServer(app.mount())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/map/live?lat=40.99&lon=29.03&category=park", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := make(chan mapBody)
	go func() {
		defer close(events)
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var b mapBody
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &b); err != nil {
				return
			}
			select {
			case events <- b:
			case <-ctx.Done():
				return
			}
		}
	}()

	ready := nextSnapshot(t, events, func(b mapBody) bool { return b.State == "ready" })
	assert.Equal(t, []string{"v-park", "ext-100", "ext-200"}, ready.ids(),
		"external results are not re-filtered by category")

	require.Eventually(t, func() bool { return app.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	// A catalog write reaches the open stream without a reload.
	err = app.catalog.Upsert(context.Background(), &venues.Venue{
		ID: "op-9", Name: "Yogurtcu Park", Category: venues.Park,
		Location: venues.Coordinate{Latitude: 40.985, Longitude: 29.035},
	})
	require.NoError(t, err)

	changed := nextSnapshot(t, events, func(b mapBody) bool { return len(b.Venues) == 4 })
	assert.Equal(t, []string{"v-park", "op-9", "ext-100", "ext-200"}, changed.ids())
	assert.Equal(t, ready.Generation, changed.Generation, "a change is not a new load")

	cancel()
	assert.Eventually(t, func() bool { return app.hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond,
		"closing the stream ends the subscription")
}
