package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAuthMiddleware(t *testing.T) {
	app := newTestApplication(t, testStore(), fakeExternal{})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"bearer token", "Bearer abc", http.StatusUnauthorized},
		{"not base64", "Basic !!!", http.StatusUnauthorized},
		{"wrong password", "Basic YWRtaW46bm9wZQ==", http.StatusUnauthorized},
		{"valid", "Basic YWRtaW46c2VjcmV0", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			app.mount().ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestBasicAuthMiddlewareUnconfigured(t *testing.T) {
	app := newTestApplication(t, testStore(), fakeExternal{})
	app.config.auth.basic = basicConfig{}

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.SetBasicAuth("", "")
	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRateLimiterMiddleware(t *testing.T) {
	app := newTestApplication(t, testStore(), fakeExternal{})
	app.config.rateLimiter = ratelimiter.Config{RequestsPerTimeFrame: 2, TimeFrame: time.Minute, Enabled: true}
	app.rateLimiter = ratelimiter.NewFixedWindowLimiter(2, time.Minute)
	mux := app.mount()

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
		req.Header.Set("X-Forwarded-For", ip)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, do("203.0.113.5").Code)
	assert.Equal(t, http.StatusOK, do("203.0.113.5").Code)

	rr := do("203.0.113.5")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do("198.51.100.7").Code, "other clients are unaffected")
}

func TestHealthCheckHandler(t *testing.T) {
	app := newTestApplication(t, testStore(), fakeExternal{})

	rr := executeRequest(app, http.MethodGet, "/v1/health", "", true)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeData[healthResponse](t, rr)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, backendMemory, resp.CuratedBackend)
	assert.Equal(t, version, resp.Version)
}
