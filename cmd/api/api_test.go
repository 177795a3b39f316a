package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/aggregate"
	"github.com/fatihreha/Miro-sub002/internal/catalog"
	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/fatihreha/Miro-sub002/internal/media"
	"github.com/fatihreha/Miro-sub002/internal/overpass"
	"github.com/fatihreha/Miro-sub002/internal/ratelimiter"
	"github.com/fatihreha/Miro-sub002/internal/realtime"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminUser = "admin"
	adminPass = "secret"
)

type fakeExternal struct {
	venues []venues.Venue
	err    error
}

func (f fakeExternal) Fetch(context.Context, overpass.Query) ([]venues.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]venues.Venue, len(f.venues))
	copy(out, f.venues)
	return out, nil
}

func newTestApplication(t *testing.T, store venues.Store, external aggregate.ExternalSource) *application {
	t.Helper()

	logger := zap.NewNop().Sugar()
	cat := catalog.New(store, catalog.Config{}, media.NewPlaceholders(nil, logger), logger)
	hub := realtime.NewHub(cat.All, 0, logger)
	cat.SetNotifier(hub)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return &application{
		config: config{
			addr:    ":0",
			env:     "test",
			backend: backendMemory,
			auth: authConfig{
				basic: basicConfig{user: adminUser, pass: adminPass},
			},
		},
		logger:      logger,
		catalog:     cat,
		engine:      aggregate.NewEngine(external, cat, hub, logger),
		hub:         hub,
		uploads:     media.NewUploads(nil),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(1000, time.Minute),
	}
}

func executeRequest(app *application, method, target, body string, admin bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if admin {
		req.SetBasicAuth(adminUser, adminPass)
	}

	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	return rr
}

// decodeData unwraps the {"data": ...} envelope.
func decodeData[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env.Data
}

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}
