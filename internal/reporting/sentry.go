// Package reporting forwards server errors and degraded loads to Sentry.
// Every function is a no-op until Init has been called with a DSN.
package reporting

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

type Config struct {
	DSN              string
	Environment      string
	Release          string
	TracesSampleRate float64
}

// Init configures the global Sentry client. An empty DSN disables reporting.
func Init(cfg Config, logger *zap.SugaredLogger) (bool, error) {
	if cfg.DSN == "" {
		logger.Warn("SENTRY_DSN not set, error reporting disabled")
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		TracesSampleRate: cfg.TracesSampleRate,
		BeforeSend:       scrub,
	})
	if err != nil {
		return false, fmt.Errorf("sentry init: %w", err)
	}

	logger.Infow("sentry initialized", "environment", cfg.Environment, "release", cfg.Release)
	return true, nil
}

// scrub drops credentials from captured requests.
func scrub(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request != nil && event.Request.Headers != nil {
		delete(event.Request.Headers, "Authorization")
		delete(event.Request.Headers, "Cookie")
	}
	return event
}

// CaptureException reports err with tags attached to this event only.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		sentry.CaptureException(err)
	})
}

func CaptureMessage(message string, level sentry.Level, tags map[string]string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		scope.SetTags(tags)
		sentry.CaptureMessage(message)
	})
}

// Flush waits up to timeout for queued events to be sent.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
