package reporting

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWithoutDSN(t *testing.T) {
	enabled, err := Init(Config{}, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.False(t, enabled)

	assert.NotPanics(t, func() {
		CaptureException(errors.New("boom"), map[string]string{"route": "/v1/venues"})
		CaptureException(nil, nil)
		CaptureMessage("degraded", sentry.LevelWarning, nil)
	})
}

func TestInitRejectsBadDSN(t *testing.T) {
	_, err := Init(Config{DSN: "not a dsn"}, zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestScrub(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{Headers: map[string]string{
		"Authorization": "Basic abc",
		"Cookie":        "session=1",
		"Accept":        "application/json",
	}}}

	out := scrub(event, nil)
	assert.Equal(t, map[string]string{"Accept": "application/json"}, out.Request.Headers)
}
