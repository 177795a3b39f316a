package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/fatihreha/Miro-sub002/internal/aggregate"
	"github.com/fatihreha/Miro-sub002/internal/catalog"
	"github.com/fatihreha/Miro-sub002/internal/db"
	"github.com/fatihreha/Miro-sub002/internal/domain/venues"
	"github.com/fatihreha/Miro-sub002/internal/media"
	"github.com/fatihreha/Miro-sub002/internal/overpass"
	"github.com/fatihreha/Miro-sub002/internal/ratelimiter"
	"github.com/fatihreha/Miro-sub002/internal/realtime"
	"github.com/fatihreha/Miro-sub002/internal/reporting"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	backendPostgres = "postgres"
	backendSupabase = "supabase"
	backendMemory   = "memory"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	return ratelimiter.Config{
		RequestsPerTimeFrame: envInt("RATELIMITER_REQUESTS_COUNT", 200),
		TimeFrame:            envDuration("RATELIMITER_TIME_FRAME", 5*time.Second),
		Enabled:              envBool("RATE_LIMITER_ENABLED", false),
	}
}

func envString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %g\n", key, fallback)
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %t\n", key, fallback)
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %s\n", key, fallback)
		return fallback
	}
	return parsed
}

// NewLogger creates a new zap logger with color.
func NewLogger(env string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if env == "development" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

var version = "0.3.0"

//	@title			Venue Map API
//	@description	Sport venues around a point, merged from the curated catalog and OpenStreetMap.

//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/v1
//	@securityDefinitions.basic	BasicAuth

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading configuration from the environment")
	}

	cfg := config{
		addr:    envString("ADDR", ":8080"),
		env:     envString("ENV", "development"),
		apiURL:  envString("EXTERNAL_URL", "localhost:8080"),
		backend: strings.ToLower(envString("CURATED_BACKEND", backendMemory)),
		defaultCenter: centerConfig{
			lat: envFloat("DEFAULT_CENTER_LAT", catalog.IstanbulCenter.Latitude),
			lon: envFloat("DEFAULT_CENTER_LON", catalog.IstanbulCenter.Longitude),
		},
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    int32(envInt("DB_MAX_CONNS", 10)),
			maxIdleTime: envString("DB_MAX_IDLE_TIME", "15m"),
			migrate:     envBool("DB_AUTO_MIGRATE", false),
		},
		supabase: supabaseConfig{
			url:     os.Getenv("SUPABASE_URL"),
			anonKey: os.Getenv("SUPABASE_ANON_KEY"),
		},
		overpass: overpassConfig{
			url:          envString("OVERPASS_URL", overpass.DefaultURL),
			timeout:      envDuration("OVERPASS_TIMEOUT", overpass.DefaultTimeout),
			ratingPolicy: os.Getenv("EXTERNAL_RATING_POLICY"),
		},
		redis: redisConfig{
			addr: os.Getenv("REDIS_ADDR"),
			pw:   os.Getenv("REDIS_PW"),
			db:   envInt("REDIS_DB", 0),
		},
		sentry: sentryConfig{
			dsn: os.Getenv("SENTRY_DSN"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}

	// Logger
	logger, err := NewLogger(cfg.env)
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	sentryEnabled, err := reporting.Init(reporting.Config{
		DSN:         cfg.sentry.dsn,
		Environment: cfg.env,
		Release:     version,
	}, logger)
	if err != nil {
		logger.Fatal(err)
	}

	// Curated store
	store, pool := openStore(cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	//cloudinary
	var cld *cloudinary.Cloudinary
	if cloudinaryURL := os.Getenv("CLOUDINARY_URL"); cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
		if err != nil {
			logger.Fatal(err)
		}
		cld.Config.URL.Secure = true
	} else {
		logger.Warn("CLOUDINARY_URL not set, using fallback placeholder images")
	}
	placeholders := media.NewPlaceholders(cld, logger)

	ratingPolicy, err := overpass.ParseRatingPolicy(cfg.overpass.ratingPolicy)
	if err != nil {
		logger.Fatal(err)
	}
	external := overpass.NewClient(overpass.Config{
		URL:          cfg.overpass.url,
		Timeout:      cfg.overpass.timeout,
		UserAgent:    "venue-map/" + version,
		RatingPolicy: ratingPolicy,
	}, placeholders, logger)

	center := venues.Coordinate{Latitude: cfg.defaultCenter.lat, Longitude: cfg.defaultCenter.lon}
	if !center.Valid() {
		logger.Fatalw("invalid default center", "lat", center.Latitude, "lon", center.Longitude)
	}
	cat := catalog.New(store, catalog.Config{DefaultCenter: center}, placeholders, logger)

	hub := realtime.NewHub(cat.All, realtime.DefaultRefreshTimeout, logger)
	cat.SetNotifier(hub)

	engine := aggregate.NewEngine(external, cat, hub, logger)
	if sentryEnabled {
		engine.OnDegraded = func(d aggregate.Diagnostics) {
			reporting.CaptureMessage("venue search degraded", sentry.LevelWarning, map[string]string{
				"outcome":          string(d.Outcome),
				"external_failed":  strconv.FormatBool(d.ExternalFailed),
				"curated_degraded": strconv.FormatBool(d.CuratedDegraded),
			})
		}
	}

	// Rate limiter
	var limiter ratelimiter.Limiter
	if cfg.redis.addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.redis.addr,
			Password: cfg.redis.pw,
			DB:       cfg.redis.db,
		})
		defer rdb.Close()
		limiter = ratelimiter.NewRedisFixedWindow(rdb, cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame, logger)
		logger.Infow("rate limiter shared through redis", "addr", cfg.redis.addr)
	} else {
		limiter = ratelimiter.NewFixedWindowLimiter(
			cfg.rateLimiter.RequestsPerTimeFrame,
			cfg.rateLimiter.TimeFrame,
		)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		catalog:     cat,
		engine:      engine,
		hub:         hub,
		uploads:     media.NewUploads(cld),
		rateLimiter: limiter,
		sentry:      sentryEnabled,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.startBackground(ctx)

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.NewString("curated_backend").Set(cfg.backend)
	if pool != nil {
		expvar.Publish("database", expvar.Func(func() any {
			st := pool.Stat()
			return map[string]int32{
				"total_conns":    st.TotalConns(),
				"idle_conns":     st.IdleConns(),
				"acquired_conns": st.AcquiredConns(),
				"max_conns":      st.MaxConns(),
			}
		}))
	}
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("live_subscribers", expvar.Func(func() any {
		return hub.Subscribers()
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatal(err)
	}
}

// openStore picks the curated backend. The pool is returned for the
// postgres backend only.
func openStore(cfg config, logger *zap.SugaredLogger) (venues.Store, *pgxpool.Pool) {
	switch cfg.backend {
	case backendPostgres:
		pool, err := db.New(cfg.db.addr, cfg.db.maxConns, cfg.db.maxIdleTime)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Info("database connection pool established")

		if cfg.db.migrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := db.EnsureSchema(ctx, pool); err != nil {
				logger.Fatal(err)
			}
		}
		return venues.NewRepository(pool), pool

	case backendSupabase:
		client, err := supabase.NewClient(cfg.supabase.url, cfg.supabase.anonKey, &supabase.ClientOptions{})
		if err != nil {
			logger.Fatalw("failed to create supabase client", "error", err)
		}
		logger.Info("supabase client initialized")
		return venues.NewSupabaseRepository(client), nil

	case backendMemory:
		logger.Warn("using the in-memory curated store, changes are lost on restart")
		return venues.NewMemoryStore(venues.Seed(venues.Filter{})...), nil
	}

	logger.Fatalw("unknown CURATED_BACKEND", "backend", cfg.backend)
	return nil, nil
}
