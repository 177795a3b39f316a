package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fatihreha/Miro-sub002/internal/media"
	"github.com/go-chi/chi/v5"
)

const maxPhotoBytes = 10 << 20

// UploadVenuePhoto godoc
//
//	@Summary		Replace a venue's photo
//	@Description	Uploads the photo to Cloudinary and points the venue at it. A previously uploaded photo is deleted.
//	@Tags			Admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Param			photo	formData	file	true	"Photo"
//	@Success		200		{object}	venues.Venue
//	@Failure		400		{object}	error	"Missing or oversized photo"
//	@Failure		401		{object}	error	"Unauthorized"
//	@Failure		404		{object}	error	"Venue not found"
//	@Failure		503		{object}	error	"Image storage not configured"
//	@Security		BasicAuth
//	@Router			/admin/venues/{venueID}/photo [put]
func (app *application) uploadVenuePhotoHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	venue, err := app.catalog.Get(r.Context(), venueID)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("parse form: %w", err))
		return
	}
	file, _, err := r.FormFile("photo")
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("photo: %w", err))
		return
	}
	defer file.Close()

	url, err := app.uploads.Upload(r.Context(), file, venueID)
	if err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			app.serviceUnavailableResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	previous := venue.ImageURL
	venue.ImageURL = url
	if err := app.catalog.Upsert(r.Context(), venue); err != nil {
		app.catalogError(w, r, err)
		return
	}

	if previous != "" {
		if err := app.uploads.Destroy(r.Context(), previous); err != nil && !errors.Is(err, media.ErrForeignURL) {
			app.logger.Warnw("failed to delete replaced venue photo", "venue", venueID, "url", previous, "error", err)
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, venue); err != nil {
		app.internalServerError(w, r, err)
	}
}
