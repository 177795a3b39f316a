package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fatihreha/Miro-sub002/internal/aggregate"
	"github.com/fatihreha/Miro-sub002/internal/distance"
	"github.com/fatihreha/Miro-sub002/internal/params"
)

const liveKeepAlive = 25 * time.Second

type mapResponse struct {
	Generation  uint64                `json:"generation"`
	State       aggregate.State       `json:"state"`
	Filter      aggregate.Filter      `json:"filter"`
	Diagnostics aggregate.Diagnostics `json:"diagnostics"`
	Venues      []distance.Placed     `json:"venues"`
}

func newMapResponse(q params.Nearby, snap aggregate.Snapshot) mapResponse {
	placed := distance.Annotate(q.Center, snap.Venues)
	if q.Sort == params.SortDistance {
		distance.SortByDistance(placed)
	}
	return mapResponse{
		Generation:  snap.Generation,
		State:       snap.State,
		Filter:      snap.Filter,
		Diagnostics: snap.Diagnostics,
		Venues:      placed,
	}
}

func viewFilter(q params.Nearby) aggregate.Filter {
	return aggregate.Filter{
		Category:     q.Category,
		Search:       q.Search,
		RadiusMeters: q.Radius,
	}
}

// NearbyVenues godoc
//
//	@Summary		Venues around a point
//	@Description	Merges curated venues with OpenStreetMap venues within radius metres of lat/lon. Sponsored venues come first; each venue carries its distance from the point. If a source fails the other is still served and diagnostics say which one failed.
//	@Tags			Map
//	@Produce		json
//	@Param			lat			query		number	true	"Latitude"
//	@Param			lon			query		number	true	"Longitude"
//	@Param			radius		query		int		false	"Search radius in metres"	default(5000)
//	@Param			category	query		string	false	"Venue category, or all"
//	@Param			q			query		string	false	"Text search"
//	@Param			sort		query		string	false	"relevance or distance"
//	@Success		200			{object}	mapResponse
//	@Failure		400			{object}	error	"Invalid query"
//	@Failure		500			{object}	error	"Internal server error"
//	@Router			/map/nearby [get]
func (app *application) nearbyVenuesHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseNearby(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	snap, err := app.engine.Nearby(r.Context(), q.Center, viewFilter(q))
	if err != nil {
		if errors.Is(err, aggregate.ErrBadCenter) || errors.Is(err, aggregate.ErrBadRadius) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, newMapResponse(q, snap)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// LiveMap godoc
//
//	@Summary		Live venues around a point
//	@Description	Server-sent events. Every event is a snapshot of the merged venue set, re-sent whenever the curated catalog changes. The subscription ends when the client disconnects.
//	@Tags			Map
//	@Produce		text/event-stream
//	@Param			lat			query		number	true	"Latitude"
//	@Param			lon			query		number	true	"Longitude"
//	@Param			radius		query		int		false	"Search radius in metres"	default(5000)
//	@Param			category	query		string	false	"Venue category, or all"
//	@Param			q			query		string	false	"Text search"
//	@Param			sort		query		string	false	"relevance or distance"
//	@Success		200			{object}	mapResponse	"One snapshot per event"
//	@Failure		400			{object}	error		"Invalid query"
//	@Router			/map/live [get]
func (app *application) liveMapHandler(w http.ResponseWriter, r *http.Request) {
	q, err := params.ParseNearby(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	ctx := r.Context()

	view := app.engine.NewView()
	defer view.Close()

	rc := http.NewResponseController(w)
	// Live streams are exempt from the server write timeout.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		app.logger.Debugw("cannot clear write deadline for live stream", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		app.logger.Errorw("live stream not supported by response writer", "error", err)
		return
	}

	go func() {
		_, err := view.Load(ctx, q.Center, viewFilter(q))
		if err != nil && !errors.Is(err, aggregate.ErrSuperseded) && !errors.Is(err, aggregate.ErrClosed) {
			app.logger.Warnw("live view load failed", "error", err)
		}
	}()

	keepAlive := time.NewTicker(liveKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-view.Updates():
			if !ok {
				return
			}
			if err := writeEvent(w, snap.Generation, newMapResponse(q, snap)); err != nil {
				app.logger.Debugw("live stream write failed", "error", err)
				return
			}
		case <-keepAlive.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, id uint64, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: snapshot\nid: %s\ndata: %s\n\n", strconv.FormatUint(id, 10), payload)
	return err
}
