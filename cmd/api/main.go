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

	"github.com/the3rdukem/markethub-ghana-sub000/internal/account"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/admin"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/auth"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/config"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/core"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/health"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/middleware"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/server"
	"github.com/the3rdukem/markethub-ghana-sub000/internal/store"
)

const (
	drainDelay       = 5 * time.Second
	bootstrapTimeout = 30 * time.Second
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

	sqlStore := store.New(db)
	repos := sqlStore.Repos()

	authSvc := auth.NewService(sqlStore, cfg.Session.Duration)
	authHandler := auth.NewHandler(authSvc)

	accountSvc := account.NewService(repos.Accounts, repos.Vendors, authSvc)
	accountHandler := account.NewHandler(accountSvc)

	adminHandler := admin.NewHandler(db, redis, authSvc)

	healthHandler := health.NewHandler(cfg.App.Version, db, redis)

	bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	err = auth.EnsureMasterAdmin(bootstrapCtx, authSvc, cfg.Bootstrap)
	cancel()
	if err != nil {
		return err
	}

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
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(authSvc)

	// Credential endpoints get their own tighter bucket, keyed per endpoint
	// so a burst of signups cannot starve logins.
	loginLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.LoginRequests,
				cfg.RateLimit.LoginBurst,
			),
			KeyFunc:  middleware.KeyByIPAndEndpoint,
			FailOpen: true,
		},
	).Handler

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, loginLimiter)
		accountHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator)
	})

	sweeperDone := startSessionSweeper(
		ctx,
		authSvc,
		cfg.Session.SweepInterval,
		logger,
	)

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

	<-sweeperDone

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

// startSessionSweeper deletes expired session rows on a fixed interval so the
// table does not accumulate tombstones between logins.
func startSessionSweeper(
	ctx context.Context,
	svc *auth.Service,
	interval time.Duration,
	logger *slog.Logger,
) <-chan struct{} {
	done := make(chan struct{})

	if interval <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				deleted, err := svc.CleanupExpiredSessions(ctx)
				if err != nil {
					logger.Error("session sweep failed", "error", err)
					continue
				}
				if deleted > 0 {
					logger.Info("session sweep completed",
						"deleted", deleted,
					)
				}
			}
		}
	}()

	return done
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
