// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/hbnb/internal/admin"
	"github.com/carterperez-dev/hbnb/internal/amenity"
	"github.com/carterperez-dev/hbnb/internal/auth"
	"github.com/carterperez-dev/hbnb/internal/config"
	"github.com/carterperez-dev/hbnb/internal/core"
	"github.com/carterperez-dev/hbnb/internal/facade"
	"github.com/carterperez-dev/hbnb/internal/health"
	"github.com/carterperez-dev/hbnb/internal/middleware"
	"github.com/carterperez-dev/hbnb/internal/place"
	"github.com/carterperez-dev/hbnb/internal/review"
	"github.com/carterperez-dev/hbnb/internal/server"
	"github.com/carterperez-dev/hbnb/internal/user"
)

const (
	drainDelay = 5 * time.Second

	loginRequestsPerMinute = 10
	loginBurst             = 5
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"storage", cfg.Storage.Driver,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry exporter", "error", err)
		telemetry = core.LocalTelemetry(cfg.Otel)
	}
	if telemetry.Exporting() {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
			"sample_rate", cfg.Otel.SampleRate,
		)
	}

	metrics := core.NewMetrics("hbnb")

	var db *core.Database
	if cfg.UsesPostgres() {
		db, err = openDatabase(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
		"key_prefix", cfg.Redis.KeyPrefix,
	)

	f := newFacade(db, logger, metrics, telemetry)

	if cfg.Admin.Enabled() {
		if err := bootstrapAdmin(ctx, f, cfg.Admin, logger); err != nil {
			return err
		}
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	authSvc := auth.NewService(f, jwtManager, auth.NewRedisRevocations(redis), logger)
	authHandler := auth.NewHandler(authSvc)

	userHandler := user.NewHandler(f)
	placeHandler := place.NewHandler(f)
	amenityHandler := amenity.NewHandler(f)
	reviewHandler := review.NewHandler(f)

	healthHandler := health.NewHandler().Register("redis", redis)

	adminCfg := admin.HandlerConfig{
		Counter:    f,
		Storage:    cfg.Storage.Driver,
		RedisStats: redis.PoolStats,
		RedisPing:  redis.Ping,
	}
	if db != nil {
		healthHandler.Register("database", db)
		adminCfg.DBStats = db.Stats
		adminCfg.DBPing = db.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing(
		telemetry.Tracer("github.com/carterperez-dev/hbnb/http"),
		telemetry.Propagator(),
	))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(metrics))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())
	router.Handle("/metrics", metrics.Handler())

	authenticator := middleware.Authenticator(authSvc)
	adminOnly := middleware.RequireAdmin

	loginLimit := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit:    middleware.PerMinute(loginRequestsPerMinute, loginBurst),
		KeyFunc:  middleware.KeyByUserAndEndpoint,
		FailOpen: true,
	}).Handler

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, loginLimit)
		userHandler.RegisterRoutes(r, authenticator, adminOnly)
		placeHandler.RegisterRoutes(r, authenticator)
		amenityHandler.RegisterRoutes(r, authenticator, adminOnly)
		reviewHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

func openDatabase(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*core.Database, error) {
	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Storage.Migrate {
		if err := core.Migrate(ctx, db.DB); err != nil {
			_ = db.Close() //nolint:errcheck // already failing
			return nil, err
		}
		logger.Info("database schema applied")
	}

	return db, nil
}

// newFacade uses the postgres repositories when db is set and fresh
// in-memory stores otherwise.
func newFacade(
	db *core.Database,
	logger *slog.Logger,
	metrics *core.Metrics,
	telemetry *core.Telemetry,
) *facade.Facade {
	deps := facade.MemoryDeps()
	if db != nil {
		deps = facade.Deps{
			Users:     user.NewRepository(db.DB),
			Places:    place.NewRepository(db.DB),
			Amenities: amenity.NewRepository(db.DB),
			Reviews:   review.NewRepository(db.DB),
		}
	}

	deps.Logger = logger
	deps.Metrics = metrics
	deps.Tracer = telemetry.Tracer(facade.TracerName)
	return facade.New(deps)
}

func bootstrapAdmin(
	ctx context.Context,
	f *facade.Facade,
	cfg config.AdminConfig,
	logger *slog.Logger,
) error {
	u, created, err := f.EnsureAdmin(ctx, facade.UserInput{
		FirstName: cfg.FirstName,
		LastName:  cfg.LastName,
		Email:     cfg.Email,
		Password:  cfg.Password,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	if created {
		logger.Info("admin user created", "user_id", u.ID)
	} else if !u.IsAdmin {
		logger.Warn("bootstrap email belongs to a non-admin user", "user_id", u.ID)
	}

	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
