// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carterperez-dev/foodhall/internal/admin"
	"github.com/carterperez-dev/foodhall/internal/auth"
	"github.com/carterperez-dev/foodhall/internal/booking"
	"github.com/carterperez-dev/foodhall/internal/bus"
	"github.com/carterperez-dev/foodhall/internal/config"
	"github.com/carterperez-dev/foodhall/internal/core"
	"github.com/carterperez-dev/foodhall/internal/dashboard"
	"github.com/carterperez-dev/foodhall/internal/document"
	"github.com/carterperez-dev/foodhall/internal/event"
	"github.com/carterperez-dev/foodhall/internal/health"
	"github.com/carterperez-dev/foodhall/internal/mailer"
	"github.com/carterperez-dev/foodhall/internal/menu"
	"github.com/carterperez-dev/foodhall/internal/middleware"
	"github.com/carterperez-dev/foodhall/internal/notification"
	"github.com/carterperez-dev/foodhall/internal/profile"
	"github.com/carterperez-dev/foodhall/internal/promo"
	"github.com/carterperez-dev/foodhall/internal/server"
	"github.com/carterperez-dev/foodhall/internal/space"
	"github.com/carterperez-dev/foodhall/internal/storage"
)

const (
	drainDelay = 5 * time.Second

	jobReminders    = "booking-reminders"
	jobSessionPurge = "session-purge"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	genKeys := flag.Bool("genkeys", false, "write a new ES256 key pair to the configured paths and exit")
	flag.Parse()

	if *genKeys {
		if err := generateKeys(*configPath); err != nil {
			slog.Error("key generation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen,gocyclo // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	startedAt := time.Now()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, logFile := setupLogger(cfg.Log)
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

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	cache, err := core.NewCache(cfg.Cache)
	if err != nil {
		return err
	}

	jwtManager, err := loadJWTManager(cfg)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	var (
		publisher bus.Publisher = bus.Nop{}
		events    *bus.NATS
	)
	if cfg.NATS.Enabled {
		events, err = bus.Connect(ctx, cfg.NATS)
		if err != nil {
			return err
		}
		publisher = events
	}

	mail, err := mailer.New(cfg.Email, logger)
	if err != nil {
		return err
	}
	logger.Info("email provider ready", "provider", cfg.Email.Provider)

	blobs, err := storage.NewFilesystem(cfg.Storage.Root)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewHTTPMetrics(registry)

	profileSvc := profile.NewService(profile.NewRepository(db.DB), cache)
	authSvc := auth.NewService(
		auth.NewRepository(db.DB),
		jwtManager,
		profile.NewAccountStore(profileSvc),
		auth.NewRedisBlacklist(redis.Client),
	)
	promoSvc := promo.NewService(promo.NewRepository(db.DB), cache)
	bookingSvc := booking.NewService(booking.NewRepository(db.DB), promoSvc, publisher, cache)
	spaceSvc := space.NewService(space.NewRepository(db.DB), cache)
	menuSvc := menu.NewService(menu.NewRepository(db.DB, db), cache)
	eventSvc := event.NewService(event.NewRepository(db.DB), cache)
	documentSvc := document.NewService(document.NewRepository(db.DB, db), blobs, cache)
	notificationSvc := notification.NewService(
		bookingSvc,
		mail,
		notification.NewRepository(db.DB),
		notification.NewMetrics(registry),
		cfg.Email.From,
		cfg.Notification.Venue,
	)
	dashboardSvc := dashboard.NewService(dashboard.Sources{
		Bookings:     bookingSvc,
		Applications: spaceSvc,
		Events:       eventSvc,
		Promos:       promoSvc,
		Documents:    documentSvc,
	})

	scheduler := notification.NewScheduler(time.UTC)
	if cfg.Notification.ReminderEnabled {
		reminders := notification.NewReminders(bookingSvc, notificationSvc)
		if err := scheduler.Add(jobReminders, cfg.Notification.ReminderSchedule, reminders.Job); err != nil {
			return err
		}
	}
	if err := scheduler.Add(jobSessionPurge, "@hourly", authSvc.PurgeExpired); err != nil {
		return err
	}
	scheduler.Start()

	stopSubscribers := func() {}
	if events != nil {
		stopSubscribers, err = notification.Subscribe(ctx, events, notificationSvc)
		if err != nil {
			return err
		}
	}

	deps := []health.Dependency{
		{Name: "database", Checker: db},
		{Name: "redis", Checker: redis},
	}
	if events != nil {
		deps = append(deps, health.Dependency{Name: "nats", Checker: events, Optional: true})
	}
	healthHandler := health.NewHandler(deps...)

	adminCfg := admin.HandlerConfig{
		DBStats:    db.Stats,
		DBPing:     db.Ping,
		RedisStats: redis.PoolStats,
		RedisPing:  redis.Ping,
		CacheStats: cache.Stats,
		Jobs:       scheduler,
		JobNames:   []string{jobReminders, jobSessionPurge},
		Sessions:   authSvc,
		StartedAt:  startedAt,
	}
	if events != nil {
		adminCfg.Bus = events
	}

	authHandler := auth.NewHandler(authSvc)
	profileHandler := profile.NewHandler(profileSvc)
	promoHandler := promo.NewHandler(promoSvc)
	bookingHandler := booking.NewHandler(bookingSvc)
	spaceHandler := space.NewHandler(spaceSvc)
	menuHandler := menu.NewHandler(menuSvc)
	eventHandler := event.NewHandler(eventSvc)
	documentHandler := document.NewHandler(documentSvc, cfg.Storage.MaxUploadSize)
	notificationHandler := notification.NewHandler(notificationSvc)
	dashboardHandler := dashboard.NewHandler(dashboardSvc)
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(httpMetrics.Handler)
	router.Use(middleware.Tracing(cfg.Otel.ServiceName))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	guard := middleware.NewGuard(authSvc, cfg.Auth)
	perRole := middleware.RoleRateLimiter(redis.Client, middleware.DefaultRoleLimits)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, guard.Authenticator)
		profileHandler.RegisterRoutes(r, guard.Authenticator)

		bookingHandler.RegisterRoutes(r)
		menuHandler.RegisterRoutes(r)
		eventHandler.RegisterRoutes(r)
		promoHandler.RegisterRoutes(r)
		notificationHandler.RegisterRoutes(r.With(guard.OptionalAuth))

		r.Group(func(r chi.Router) {
			r.Use(guard.Authenticator, guard.RequireTenant, perRole)
			documentHandler.RegisterRoutes(r)
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Use(guard.Authenticator, guard.RequireTenant, perRole)
			spaceHandler.RegisterTenantRoutes(r)
		})

		r.Route("/investors", func(r chi.Router) {
			r.Use(guard.Authenticator, guard.RequireInvestor, perRole)
			dashboardHandler.RegisterInvestorRoutes(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(guard.Authenticator, guard.RequireAdmin, perRole)

			profileHandler.RegisterAdminRoutes(r)
			bookingHandler.RegisterAdminRoutes(r)
			spaceHandler.RegisterAdminRoutes(r)
			menuHandler.RegisterAdminRoutes(r)
			eventHandler.RegisterAdminRoutes(r)
			promoHandler.RegisterAdminRoutes(r)
			documentHandler.RegisterAdminRoutes(r)
			notificationHandler.RegisterAdminRoutes(r)
			dashboardHandler.RegisterAdminRoutes(r)
			adminHandler.RegisterRoutes(r)
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

	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown error", "error", err)
	}

	stopSubscribers()
	if events != nil {
		events.Close()
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	cache.Close()

	if err := blobs.Close(); err != nil {
		logger.Error("storage close error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")

	if logFile != nil {
		_ = logFile.Close() //nolint:errcheck // nothing left to log to
	}
	return nil
}

// loadJWTManager falls back to an in-memory key outside production when
// no key file exists yet.
func loadJWTManager(cfg *config.Config) (*auth.JWTManager, error) {
	manager, err := auth.NewJWTManager(cfg.JWT)
	if err == nil {
		return manager, nil
	}

	if !errors.Is(err, fs.ErrNotExist) || cfg.IsProduction() {
		return nil, err
	}

	slog.Warn("JWT private key not found, signing with an ephemeral key",
		"path", cfg.JWT.PrivateKeyPath,
	)
	return auth.NewEphemeralJWTManager(cfg.JWT)
}

func generateKeys(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}

	slog.Info("key pair written",
		"private", cfg.JWT.PrivateKeyPath,
		"public", cfg.JWT.PublicKeyPath,
	)
	return nil
}
