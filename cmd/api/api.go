package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatihreha/Miro-sub002/docs" //this is required to generate swagger docs
	"github.com/fatihreha/Miro-sub002/internal/aggregate"
	"github.com/fatihreha/Miro-sub002/internal/catalog"
	"github.com/fatihreha/Miro-sub002/internal/media"
	"github.com/fatihreha/Miro-sub002/internal/ratelimiter"
	"github.com/fatihreha/Miro-sub002/internal/realtime"
	"github.com/fatihreha/Miro-sub002/internal/reporting"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config      config
	logger      *zap.SugaredLogger
	catalog     *catalog.Catalog
	engine      *aggregate.Engine
	hub         *realtime.Hub
	uploads     *media.Uploads
	rateLimiter ratelimiter.Limiter
	sentry      bool
}

type config struct {
	addr          string
	env           string
	apiURL        string
	backend       string
	defaultCenter centerConfig
	db            dbConfig
	supabase      supabaseConfig
	overpass      overpassConfig
	redis         redisConfig
	sentry        sentryConfig
	auth          authConfig
	rateLimiter   ratelimiter.Config
}

type centerConfig struct {
	lat float64
	lon float64
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
	migrate     bool
}

type supabaseConfig struct {
	url     string
	anonKey string
}

type overpassConfig struct {
	url          string
	timeout      time.Duration
	ratingPolicy string
}

type redisConfig struct {
	addr string
	pw   string
	db   int
}

type sentryConfig struct {
	dsn string
}

type authConfig struct {
	basic basicConfig
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	if app.sentry {
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// The live stream outlives any request timeout, so only the
		// request/response routes get one.
		r.Get("/map/live", app.liveMapHandler)

		r.Group(func(r chi.Router) {
			//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/map/nearby", app.nearbyVenuesHandler)

			r.Route("/venues", func(r chi.Router) {
				r.Get("/", app.listVenuesHandler)
				r.Post("/submissions", app.submitVenueHandler)
				r.Get("/{venueID}", app.getVenueHandler)
				r.Post("/{venueID}/ratings", app.rateVenueHandler)
			})

			r.Route("/admin/venues/{venueID}", func(r chi.Router) {
				r.Use(app.BasicAuthMiddleware())
				r.Put("/", app.upsertVenueHandler)
				r.Delete("/", app.deleteVenueHandler)
				r.Put("/photo", app.uploadVenuePhotoHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	reporting.Flush(2 * time.Second)
	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
