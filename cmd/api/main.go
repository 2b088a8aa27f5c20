// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/dwellingly-api/internal/auth"
	"github.com/carterperez-dev/dwellingly-api/internal/config"
	"github.com/carterperez-dev/dwellingly-api/internal/contact"
	"github.com/carterperez-dev/dwellingly-api/internal/core"
	"github.com/carterperez-dev/dwellingly-api/internal/dashboard"
	"github.com/carterperez-dev/dwellingly-api/internal/health"
	"github.com/carterperez-dev/dwellingly-api/internal/lease"
	"github.com/carterperez-dev/dwellingly-api/internal/middleware"
	"github.com/carterperez-dev/dwellingly-api/internal/property"
	"github.com/carterperez-dev/dwellingly-api/internal/server"
	"github.com/carterperez-dev/dwellingly-api/internal/tenant"
	"github.com/carterperez-dev/dwellingly-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
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
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	hasher, err := core.NewHasher(core.HashParams{
		Time:    cfg.Hash.Time,
		Memory:  cfg.Hash.Memory,
		Threads: cfg.Hash.Threads,
	})
	if err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized", "algorithm", "HS256")

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, hasher)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, hasher, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	leaseRepo := lease.NewRepository(db.DB)

	tenantRepo := tenant.NewRepository(db.DB)
	tenantSvc := tenant.NewService(db.DB, tenantRepo, leaseRepo)
	tenantHandler := tenant.NewHandler(tenantSvc)

	propertyRepo := property.NewRepository(db.DB)
	propertySvc := property.NewService(db.DB, propertyRepo, leaseRepo, tenantRepo)
	propertyHandler := property.NewHandler(propertySvc)

	leaseSvc := lease.NewService(leaseRepo, tenantSvc, propertySvc)
	leaseHandler := lease.NewHandler(leaseSvc)

	contactRepo := contact.NewRepository(db.DB)
	contactSvc := contact.NewService(db.DB, contactRepo)
	contactHandler := contact.NewHandler(contactSvc)

	healthHandler := health.NewHandler(db, redis, cfg.App.Version)

	dashboardHandler := dashboard.NewHandler(dashboard.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Users:      userSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(jwtManager, userSvc)
	adminOnly := middleware.RequireAdmin

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		contactHandler.RegisterRoutes(r, authenticator, adminOnly)
		dashboardHandler.RegisterRoutes(r, authenticator, adminOnly)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			userHandler.RegisterRoutes(r)
			tenantHandler.RegisterRoutes(r)
			propertyHandler.RegisterRoutes(r)
			leaseHandler.RegisterRoutes(r)
		})
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

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
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
