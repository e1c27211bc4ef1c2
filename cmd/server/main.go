package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/modxnet/modxnet-backend/internal/apps"
	"github.com/modxnet/modxnet-backend/internal/apps/catalog"
	"github.com/modxnet/modxnet-backend/internal/apps/engagement"
	"github.com/modxnet/modxnet-backend/internal/apps/lockerconfig"
	"github.com/modxnet/modxnet-backend/internal/cache"
	"github.com/modxnet/modxnet-backend/internal/config"
	"github.com/modxnet/modxnet-backend/internal/database"
	"github.com/modxnet/modxnet-backend/internal/handlers"
	"github.com/modxnet/modxnet-backend/internal/logging"
	"github.com/modxnet/modxnet-backend/internal/middleware"
	"github.com/modxnet/modxnet-backend/internal/routes"
	"github.com/modxnet/modxnet-backend/internal/scheduler"
	"github.com/modxnet/modxnet-backend/internal/services"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	db := database.DB

	if err := database.MigrateShared(db); err != nil {
		slog.Error("shared migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, pgLogHandler)))

	// Sentry error tracking, initialised before the scheduler starts
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Services
	ctx := context.Background()
	authService := services.NewAuthService(db, cfg)
	authService.ReserveUsernames(engagement.PseudoAuthorNames()...)
	writer := services.NewEngagementWriter(cfg.DeepSeekAPIURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.AITimeout)

	lockerService := lockerconfig.NewConfigService(db, nil)
	gameService := catalog.NewGameService(db, lockerService)
	lockerService.SetGames(gameService)

	engagementService := engagement.NewService(engagement.NewGormStore(db),
		engagement.WithNegativeTTL(cfg.NegativeTTL),
		engagement.WithTextSource(writer),
		engagement.WithGameDirectory(gameService),
	)

	modules := []apps.Module{
		catalog.New(gameService),
		lockerconfig.New(lockerService),
		engagement.New(engagementService),
	}

	for _, m := range modules {
		if models := m.Models(); len(models) > 0 {
			if err := database.MigrateModels(db, models); err != nil {
				slog.Error("module migration failed", "module", m.ID(), "error", err)
				os.Exit(1)
			}
			slog.Info("module migrated", "module", m.ID(), "models", len(models))
		}
	}

	// Handlers
	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Health:     handlers.NewHealthHandler(database.Ping, len(modules)),
		Legal:      handlers.NewLegalHandler(cfg.SiteName, cfg.ContactEmail),
		SiteConfig: handlers.NewSiteConfigHandler(db),
		Admin:      handlers.NewAdminHandler(db),
	}

	// Seed defaults
	if n, err := gameService.SeedDefaults(ctx); err != nil {
		slog.Error("catalog seed failed", "error", err)
	} else if n > 0 {
		slog.Info("catalog seeded", "games", n)
	}
	if err := h.SiteConfig.SeedDefaults(); err != nil {
		slog.Error("site config seed failed", "error", err)
	}
	if n, err := lockerService.Sync(ctx); err != nil {
		slog.Error("locker config sync failed", "error", err)
	} else if n > 0 {
		slog.Info("locker configs created", "count", n)
	}

	// Background jobs
	jobs := scheduler.NewService()
	mustAdd(jobs, scheduler.Job{
		Name:       "engagement-sweep",
		Spec:       "@every " + cfg.SweepInterval.String(),
		Timeout:    cfg.SweepInterval,
		RunOnStart: true,
		Run: func(ctx context.Context) error {
			_, err := engagementService.SweepExpired(ctx)
			return err
		},
	})
	mustAdd(jobs, scheduler.Job{
		Name: "log-retention",
		Spec: "@daily",
		Run: func(ctx context.Context) error {
			n, err := logging.PurgeOld(db.WithContext(ctx), time.Now(), cfg.LogRetention)
			if n > 0 {
				slog.Info("old system logs purged", "count", n)
			}
			return err
		},
	})
	jobs.Start()

	// Rate limiter storage (optional Redis)
	var limiterStorage fiber.Storage
	if cfg.RedisURL != "" {
		rs, err := cache.NewRedisStorage(cfg.RedisURL, "limiter:")
		if err != nil {
			slog.Error("redis config invalid, using in-memory rate limits", "error", err)
		} else if err := rs.Ping(ctx); err != nil {
			slog.Error("redis unreachable, using in-memory rate limits", "error", err)
			_ = rs.Close()
		} else {
			limiterStorage = rs
			defer rs.Close()
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, db, h, modules, limiterStorage)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	jobs.Stop(stopCtx)
	cancel()

	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(db); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func mustAdd(s *scheduler.Service, job scheduler.Job) {
	if err := s.Add(job); err != nil {
		slog.Error("job registration failed", "job", job.Name, "error", err)
		os.Exit(1)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
