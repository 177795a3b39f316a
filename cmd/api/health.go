package main

import (
	"net/http"
)

type healthResponse struct {
	Status          string `json:"status"`
	Env             string `json:"env"`
	Version         string `json:"version"`
	CuratedBackend  string `json:"curated_backend"`
	LiveSubscribers int    `json:"live_subscribers"`
}

// HealthCheck godoc
//
//	@Summary	Health check
//	@Tags		Ops
//	@Produce	json
//	@Success	200	{object}	healthResponse
//	@Failure	401	{object}	error	"Unauthorized"
//	@Security	BasicAuth
//	@Router		/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:          "ok",
		Env:             app.config.env,
		Version:         version,
		CuratedBackend:  app.config.backend,
		LiveSubscribers: app.hub.Subscribers(),
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
