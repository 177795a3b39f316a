package main

import (
	"errors"
	"net/http"

	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/go-chi/chi/v5"
)

type upsertVenuePayload struct {
	Name         string            `json:"name" validate:"required,max=100"`
	Category     venues.Category   `json:"category" validate:"required,venuecategory"`
	Location     venues.Coordinate `json:"location" validate:"required"`
	Rating       float64           `json:"rating" validate:"min=0,max=5"`
	ReviewCount  int               `json:"review_count" validate:"min=0"`
	Description  string            `json:"description" validate:"max=500"`
	ImageURL     string            `json:"image_url" validate:"omitempty,url"`
	Verified     bool              `json:"verified"`
	Sponsored    bool              `json:"is_sponsored"`
	Address      *string           `json:"address,omitempty" validate:"omitempty,max=255"`
	ContactPhone *string           `json:"contact_phone,omitempty" validate:"omitempty,max=100"`
	Website      *string           `json:"website,omitempty" validate:"omitempty,url"`
	Hours        *string           `json:"hours,omitempty" validate:"omitempty,max=255"`
	AmenityTags  []string          `json:"amenity_tags" validate:"max=50"`
}

// UpsertVenue godoc
//
//	@Summary		Create or replace a curated venue
//	@Description	Operator entry. Verified and sponsored flags are stored as given. An omitted image keeps the current one.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		string				true	"Venue ID"
//	@Param			payload	body		upsertVenuePayload	true	"Venue"
//	@Success		200		{object}	venues.Venue		"Venue replaced"
//	@Success		201		{object}	venues.Venue		"Venue created"
//	@Failure		400		{object}	error				"Invalid venue"
//	@Failure		401		{object}	error				"Unauthorized"
//	@Failure		500		{object}	error				"Internal server error"
//	@Security		BasicAuth
//	@Router			/admin/venues/{venueID} [put]
func (app *application) upsertVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	var payload upsertVenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	existing, err := app.catalog.Get(r.Context(), venueID)
	if err != nil && !errors.Is(err, venues.ErrNotFound) {
		app.catalogError(w, r, err)
		return
	}

	venue := &venues.Venue{
		ID:           venueID,
		Name:         payload.Name,
		Category:     payload.Category,
		Location:     payload.Location,
		Rating:       payload.Rating,
		ReviewCount:  payload.ReviewCount,
		Description:  payload.Description,
		ImageURL:     payload.ImageURL,
		Verified:     payload.Verified,
		Sponsored:    payload.Sponsored,
		Address:      payload.Address,
		ContactPhone: payload.ContactPhone,
		Website:      payload.Website,
		Hours:        payload.Hours,
		AmenityTags:  payload.AmenityTags,
	}
	if existing != nil {
		venue.SubmittedBy = existing.SubmittedBy
		if venue.ImageURL == "" {
			venue.ImageURL = existing.ImageURL
		}
	}

	if err := app.catalog.Upsert(r.Context(), venue); err != nil {
		app.catalogError(w, r, err)
		return
	}

	status := http.StatusOK
	if existing == nil {
		status = http.StatusCreated
	}
	if err := app.jsonResponse(w, status, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}

// DeleteVenue godoc
//
//	@Summary	Remove a curated venue
//	@Tags		Admin
//	@Param		venueID	path	string	true	"Venue ID"
//	@Success	204		"Venue removed"
//	@Failure	401		{object}	error	"Unauthorized"
//	@Failure	404		{object}	error	"Venue not found"
//	@Failure	500		{object}	error	"Internal server error"
//	@Security	BasicAuth
//	@Router		/admin/venues/{venueID} [delete]
func (app *application) deleteVenueHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.catalog.Remove(r.Context(), chi.URLParam(r, "venueID")); err != nil {
		app.catalogError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
