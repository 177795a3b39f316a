package main

import (
	"errors"
	"net/http"

	"github.com/fatihreha/Miro-sub002/internal/catalog"
	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/fatihreha/Miro-sub002/internal/params"
	"github.com/go-chi/chi/v5"
)

type venueListResponse struct {
	Venues     []venues.Venue    `json:"venues"`
	Degraded   bool              `json:"degraded"`
	Pagination params.Pagination `json:"pagination"`
}

// ListVenues godoc
//
//	@Summary		List curated venues
//	@Description	Curated catalog, sponsored first and then by rating. When the catalog store is unreachable the built-in seed venues are returned and degraded is true.
//	@Tags			Venue
//	@Produce		json
//	@Param			category	query		string	false	"Venue category, or all"
//	@Param			q			query		string	false	"Case-insensitive text matched against name and description"
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Page size"
//	@Success		200			{object}	venueListResponse
//	@Failure		400			{object}	error	"Invalid query"
//	@Router			/venues [get]
func (app *application) listVenuesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	category, err := venues.ParseCategory(q.Get("category"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	pagination := params.ParsePagination(q)

	res := app.catalog.Query(r.Context(), venues.Filter{Category: category, Search: q.Get("q")})
	pagination.ComputeMeta(len(res.Venues))

	resp := venueListResponse{
		Venues:     params.Window(pagination, res.Venues),
		Degraded:   res.Degraded,
		Pagination: pagination,
	}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// GetVenue godoc
//
//	@Summary	Fetch a curated venue
//	@Tags		Venue
//	@Produce	json
//	@Param		venueID	path		string	true	"Venue ID"
//	@Success	200		{object}	venues.Venue
//	@Failure	404		{object}	error	"Venue not found"
//	@Failure	500		{object}	error	"Internal server error"
//	@Router		/venues/{venueID} [get]
func (app *application) getVenueHandler(w http.ResponseWriter, r *http.Request) {
	venue, err := app.catalog.Get(r.Context(), chi.URLParam(r, "venueID"))
	if err != nil {
		app.catalogError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}

// SubmitVenue godoc
//
//	@Summary		Submit a venue
//	@Description	Adds a venue to the curated catalog as unverified and unsponsored. It is placed at a random point near area, or near the default centre when area is omitted.
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		venues.Submission	true	"Venue submission"
//	@Success		201		{object}	venues.Venue
//	@Failure		400		{object}	error	"Invalid submission"
//	@Failure		500		{object}	error	"Internal server error"
//	@Router			/venues/submissions [post]
func (app *application) submitVenueHandler(w http.ResponseWriter, r *http.Request) {
	var payload venues.Submission
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	venue, err := app.catalog.Submit(r.Context(), payload)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusCreated, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}

type ratingPayload struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type ratingResponse struct {
	ID          string  `json:"id"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
}

// RateVenue godoc
//
//	@Summary		Rate a curated venue
//	@Description	Folds a 1-5 rating into the venue's running average.
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		string			true	"Venue ID"
//	@Param			payload	body		ratingPayload	true	"Rating"
//	@Success		200		{object}	ratingResponse
//	@Failure		400		{object}	error	"Invalid rating"
//	@Failure		404		{object}	error	"Venue not found"
//	@Failure		409		{object}	error	"Venue changed concurrently, retry"
//	@Failure		500		{object}	error	"Internal server error"
//	@Router			/venues/{venueID}/ratings [post]
func (app *application) rateVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	var payload ratingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, catalog.ErrInvalidRating)
		return
	}

	ok, err := app.catalog.Rate(r.Context(), venueID, payload.Rating)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	if !ok {
		app.notFoundResponse(w, r, venues.ErrNotFound)
		return
	}

	venue, err := app.catalog.Get(r.Context(), venueID)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}

	resp := ratingResponse{ID: venue.ID, Rating: venue.Rating, ReviewCount: venue.ReviewCount}
	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

// catalogError maps catalog and store errors onto responses.
func (app *application) catalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, venues.ErrNotFound):
		app.notFoundResponse(w, r, err)
	case errors.Is(err, venues.ErrConflict):
		app.conflictResponse(w, r, err)
	case errors.Is(err, venues.ErrInvalidID),
		errors.Is(err, catalog.ErrInvalidRating),
		errors.Is(err, catalog.ErrInvalidSubmission),
		errors.Is(err, catalog.ErrInvalidVenue):
		app.badRequestResponse(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
