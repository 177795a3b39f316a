package aggregate

import (
	"context"
	"sort"
	"sync"

	"github.com/fatihreha/Miro-sub002/internal/catalog"
	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/fatihreha/Miro-sub002/internal/overpass"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	// PartialFailure is Ready with curated results only.
	PartialFailure
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case PartialFailure:
		return "partial_failure"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome separates a genuinely empty result from one shaped by failures.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeDegraded Outcome = "degraded"
	OutcomeOutage   Outcome = "outage"
	OutcomeEmpty    Outcome = "empty"
)

type Filter struct {
	Category     venues.Category `json:"category"`
	Search       string          `json:"search,omitempty"`
	RadiusMeters int             `json:"radius_meters"`
}

func (f Filter) storeFilter() venues.Filter {
	return venues.Filter{Category: f.Category, Search: f.Search}
}

type Diagnostics struct {
	ExternalFailed  bool    `json:"external_failed"`
	CuratedDegraded bool    `json:"curated_degraded"`
	Outcome         Outcome `json:"outcome"`
	ExternalError   string  `json:"external_error,omitempty"`
}

func (d *Diagnostics) settle(published int) {
	switch {
	case d.ExternalFailed && d.CuratedDegraded:
		d.Outcome = OutcomeOutage
	case d.ExternalFailed || d.CuratedDegraded:
		d.Outcome = OutcomeDegraded
	case published == 0:
		d.Outcome = OutcomeEmpty
	default:
		d.Outcome = OutcomeOK
	}
}

// Snapshot is one published state of a view. Venues is owned by the
// receiver.
type Snapshot struct {
	Generation  uint64            `json:"generation"`
	State       State             `json:"state"`
	Center      venues.Coordinate `json:"center"`
	Filter      Filter            `json:"filter"`
	Venues      []venues.Venue    `json:"venues"`
	Diagnostics Diagnostics       `json:"diagnostics"`
}

// View is one consumer's live result set. The published set is always
// merge(curated, external); the two slices are replaced independently, by
// loads and by curated change deliveries respectively.
type View struct {
	engine *Engine

	mu       sync.Mutex
	state    State
	center   venues.Coordinate
	filter   Filter
	curated  []venues.Venue
	external []venues.Venue
	diag     Diagnostics

	// gen is the generation of the most recently issued load.
	gen     uint64
	loading bool
	cancel  context.CancelFunc

	// pending holds the latest change delivered during a load.
	pending    []venues.Venue
	hasPending bool

	closed      bool
	updates     chan Snapshot
	unsubscribe func()
	closeOnce   sync.Once
}

func newView(e *Engine) *View {
	return &View{
		engine:  e,
		updates: make(chan Snapshot, 1),
	}
}

// Updates yields the latest published snapshot. Intermediate snapshots are
// dropped if the reader falls behind. The channel is closed by Close.
func (v *View) Updates() <-chan Snapshot {
	return v.updates
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Close cancels any load in flight and ends the curated subscription. It is
// safe to call more than once.
func (v *View) Close() {
	v.closeOnce.Do(func() {
		if v.unsubscribe != nil {
			v.unsubscribe()
		}
		v.mu.Lock()
		v.closed = true
		if v.cancel != nil {
			v.cancel()
			v.cancel = nil
		}
		close(v.updates)
		v.mu.Unlock()
	})
}

// Load queries both sources concurrently around center and publishes the
// merged result. Starting a load cancels the one before it; a load that is
// overtaken returns ErrSuperseded and publishes nothing.
//
// Source failures are not returned as errors. They are recorded in the
// snapshot diagnostics.
func (v *View) Load(ctx context.Context, center venues.Coordinate, filter Filter) (Snapshot, error) {
	if !center.Valid() {
		return Snapshot{}, ErrBadCenter
	}
	if filter.RadiusMeters <= 0 {
		return Snapshot{}, ErrBadRadius
	}
	if filter.Category == "" {
		filter.Category = venues.All
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return Snapshot{}, ErrClosed
	}
	v.gen++
	gen := v.gen
	if v.cancel != nil {
		v.cancel()
	}
	lctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.loading = true
	v.state = Loading
	v.publishLocked()
	v.mu.Unlock()
	defer cancel()

	metrics.Add("loads", 1)

	var (
		wg          sync.WaitGroup
		external    []venues.Venue
		externalErr error
		curated     catalog.Result
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		q := overpass.BuildQuery(filter.Category, center, filter.RadiusMeters)
		external, externalErr = v.engine.external.Fetch(lctx, q)
	}()
	go func() {
		defer wg.Done()
		curated = v.engine.curated.Query(lctx, filter.storeFilter())
	}()
	wg.Wait()

	v.mu.Lock()
	if gen != v.gen || v.closed {
		v.mu.Unlock()
		metrics.Add("superseded_loads", 1)
		v.engine.logger.Debugw("discarding superseded load", "generation", gen)
		return Snapshot{}, ErrSuperseded
	}

	diag := Diagnostics{CuratedDegraded: curated.Degraded}
	if externalErr != nil {
		diag.ExternalFailed = true
		diag.ExternalError = externalErr.Error()
		external = nil
	}

	v.center = center
	v.filter = filter
	v.curated = curated.Venues
	v.external = searchExternal(external, filter.Search)
	v.diag = diag
	v.state = Ready
	if diag.ExternalFailed {
		v.state = PartialFailure
	}
	v.loading = false
	v.cancel = nil

	if v.hasPending {
		v.replaceCuratedLocked(v.pending)
		v.pending, v.hasPending = nil, false
	}

	snap := v.publishLocked()
	v.mu.Unlock()

	if diag.ExternalFailed {
		v.engine.logger.Warnw("external venue search failed, serving curated venues only",
			"category", filter.Category,
			"error", externalErr,
		)
	}
	if diag.ExternalFailed || diag.CuratedDegraded {
		metrics.Add("degraded_loads", 1)
		if v.engine.OnDegraded != nil {
			v.engine.OnDegraded(snap.Diagnostics)
		}
	}
	return snap, nil
}

// applyDelta replaces the curated slice with the filtered full set. The
// external slice is left alone. During a load the delta is held and applied
// when the load commits.
func (v *View) applyDelta(full []venues.Venue) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	if v.loading {
		v.pending, v.hasPending = full, true
		return
	}
	if v.state == Idle {
		return
	}
	v.replaceCuratedLocked(full)
	v.publishLocked()
}

func (v *View) replaceCuratedLocked(full []venues.Venue) {
	f := v.filter.storeFilter()
	curated := make([]venues.Venue, 0, len(full))
	for i := range full {
		if f.Matches(&full[i]) {
			curated = append(curated, full[i])
		}
	}
	venues.SortCurated(curated)

	v.curated = curated
	// A delivery means the store answered, so the seed fallback is over.
	v.diag.CuratedDegraded = false
	metrics.Add("deltas_applied", 1)
}

func (v *View) publishLocked() Snapshot {
	snap := v.snapshotLocked()
	if v.closed {
		return snap
	}
	select {
	case <-v.updates:
	default:
	}
	select {
	case v.updates <- snap:
	default:
	}
	return snap
}

func (v *View) snapshotLocked() Snapshot {
	merged := merge(v.curated, v.external)
	diag := v.diag
	if v.state != Idle && v.state != Loading {
		diag.settle(len(merged))
	}
	return Snapshot{
		Generation:  v.gen,
		State:       v.state,
		Center:      v.center,
		Filter:      v.filter,
		Venues:      merged,
		Diagnostics: diag,
	}
}

// merge places curated venues before external ones, drops repeated ids
// keeping the first, then moves sponsored venues to the front without
// disturbing any other order.
func merge(curated, external []venues.Venue) []venues.Venue {
	out := make([]venues.Venue, 0, len(curated)+len(external))
	seen := make(map[string]struct{}, cap(out))
	for _, part := range [][]venues.Venue{curated, external} {
		for _, v := range part {
			if _, dup := seen[v.ID]; dup {
				continue
			}
			seen[v.ID] = struct{}{}
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sponsored && !out[j].Sponsored
	})
	return out
}

func searchExternal(vs []venues.Venue, search string) []venues.Venue {
	if search == "" {
		return vs
	}
	f := venues.Filter{Search: search}
	out := make([]venues.Venue, 0, len(vs))
	for i := range vs {
		if f.Matches(&vs[i]) {
			out = append(out, vs[i])
		}
	}
	return out
}
