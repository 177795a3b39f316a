// Package aggregate merges curated and external venues into one live,
// ordered result set and keeps it current as the curated catalog changes.
package aggregate

import (
	"context"
	"errors"
	"expvar"

	"github.com/fatihreha/Miro-sub002/internal/catalog"
	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/fatihreha/Miro-sub002/internal/overpass"
	"go.uber.org/zap"
)

var (
	// ErrSuperseded is returned by a load that finished after a newer load
	// on the same view had started. Its result was discarded.
	ErrSuperseded = errors.New("load superseded by a newer load")
	ErrBadRadius  = errors.New("radius must be positive")
	ErrBadCenter  = errors.New("center coordinate is out of range")
	ErrClosed     = errors.New("view is closed")
)

var metrics = expvar.NewMap("aggregate")

// ExternalSource finds venues in the public geodata index.
type ExternalSource interface {
	Fetch(ctx context.Context, q overpass.Query) ([]venues.Venue, error)
}

// CuratedSource lists curated venues, degrading to seed venues on failure.
type CuratedSource interface {
	Query(ctx context.Context, filter venues.Filter) catalog.Result
}

// ChangeFeed delivers the full curated set after every catalog change.
type ChangeFeed interface {
	Subscribe(fn func([]venues.Venue)) (unsubscribe func())
}

type Engine struct {
	external ExternalSource
	curated  CuratedSource
	feed     ChangeFeed
	logger   *zap.SugaredLogger

	// OnDegraded, when set, is called after every committed load that fell
	// back on at least one source.
	OnDegraded func(Diagnostics)
}

func NewEngine(external ExternalSource, curated CuratedSource, feed ChangeFeed, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		external: external,
		curated:  curated,
		feed:     feed,
		logger:   logger,
	}
}

// NewView opens a live view subscribed to curated changes. The caller must
// Close it.
func (e *Engine) NewView() *View {
	v := newView(e)
	if e.feed != nil {
		v.unsubscribe = e.feed.Subscribe(v.applyDelta)
	}
	return v
}

// Nearby runs a single load without a live subscription.
func (e *Engine) Nearby(ctx context.Context, center venues.Coordinate, filter Filter) (Snapshot, error) {
	v := newView(e)
	defer v.Close()
	return v.Load(ctx, center, filter)
}
