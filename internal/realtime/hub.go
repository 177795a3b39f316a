// Package realtime pushes the full curated venue set to subscribers
// whenever the catalog changes.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"go.uber.org/zap"
)

// DefaultRefreshTimeout bounds one reload of the curated set.
const DefaultRefreshTimeout = 5 * time.Second

// Loader returns the full, unfiltered curated set.
type Loader func(ctx context.Context) ([]venues.Venue, error)

// Hub turns change signals into full-set deliveries. Signals that arrive
// while a reload is running collapse into a single follow-up reload.
type Hub struct {
	load    Loader
	timeout time.Duration
	logger  *zap.SugaredLogger

	signal chan struct{}

	mu     sync.Mutex
	subs   map[uint64]func([]venues.Venue)
	nextID uint64
}

func NewHub(load Loader, timeout time.Duration, logger *zap.SugaredLogger) *Hub {
	if timeout <= 0 {
		timeout = DefaultRefreshTimeout
	}
	return &Hub{
		load:    load,
		timeout: timeout,
		logger:  logger,
		signal:  make(chan struct{}, 1),
		subs:    make(map[uint64]func([]venues.Venue)),
	}
}

// Notify records that the catalog changed. It never blocks.
func (h *Hub) Notify() {
	select {
	case h.signal <- struct{}{}:
	default:
	}
}

// Subscribe registers fn for every delivery. fn runs on the hub goroutine
// and must not block. The returned func removes the subscription; calling
// it more than once is harmless.
func (h *Hub) Subscribe(fn func([]venues.Venue)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Subscribers reports the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Run delivers reloads until ctx ends.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.signal:
			h.refresh(ctx)
		}
	}
}

func (h *Hub) refresh(ctx context.Context) {
	if h.Subscribers() == 0 {
		return
	}

	rctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	set, err := h.load(rctx)
	if err != nil {
		h.logger.Warnw("failed to reload curated venues after change", "error", err)
		return
	}

	h.mu.Lock()
	fns := make([]func([]venues.Venue), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		cp := make([]venues.Venue, len(set))
		copy(cp, set)
		fn(cp)
	}
	h.logger.Debugw("curated change delivered", "venues", len(set), "subscribers", len(fns))
}
