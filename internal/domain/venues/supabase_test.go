package venues

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supabase-community/supabase-go"
)

const testVenueID = "5f0c1f5e-2f43-4a3c-9d55-3f5f7b0c2a11"

func newTestSupabase(t *testing.T, handler http.HandlerFunc) Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := supabase.NewClient(srv.URL, "test-key", &supabase.ClientOptions{})
	require.NoError(t, err)
	return NewSupabaseRepository(client)
}

func TestSupabaseRepository_RateGivesUpAfterLostRaces(t *testing.T) {
	var patches int32
	store := newTestSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "0-0/1")
		if r.Method == http.MethodPatch {
			atomic.AddInt32(&patches, 1)
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"` + testVenueID + `","name":"Arena","category":"gym","rating":3,"review_count":2}]`))
	})

	ok, err := store.Rate(context.Background(), testVenueID, 5)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, int32(casAttempts), atomic.LoadInt32(&patches))
}

func TestSupabaseRepository_RateUnknownID(t *testing.T) {
	store := newTestSupabase(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL)
	})

	ok, err := store.Rate(context.Background(), "seed-1", 5)
	require.NoError(t, err)
	assert.False(t, ok)
}
