package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/bistro/backend/internal/application/catalog"
	identityapp "github.com/bistro/backend/internal/application/identity"
	reportapp "github.com/bistro/backend/internal/application/report"
	reservationapp "github.com/bistro/backend/internal/application/reservation"
	tradeapp "github.com/bistro/backend/internal/application/trade"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/bistro/backend/internal/infrastructure/auth"
	"github.com/bistro/backend/internal/infrastructure/cache"
	"github.com/bistro/backend/internal/infrastructure/config"
	"github.com/bistro/backend/internal/infrastructure/logger"
	"github.com/bistro/backend/internal/infrastructure/payment"
	"github.com/bistro/backend/internal/infrastructure/persistence"
	"github.com/bistro/backend/internal/infrastructure/telemetry"
	"github.com/bistro/backend/internal/interfaces/http/handler"
	"github.com/bistro/backend/internal/interfaces/http/middleware"
	"github.com/bistro/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup; main only turns its result into an exit code
func run() int {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, cfg.App.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Error("Failed to initialize telemetry", zap.Error(err))
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()
	log = providers.BridgeLogger(log)

	log.Info("Starting Bistro backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowQueryThreshold))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("dialect", db.Dialect()))

	if err := telemetry.InstrumentDB(db.DB, telemetry.DBTracing{
		Enabled: providers.Enabled() && cfg.Telemetry.DBTraceEnabled,
		FullSQL: cfg.Telemetry.DBLogFullSQL,
		System:  db.Dialect(),
	}, providers.TracerProvider()); err != nil {
		log.Error("Failed to instrument database", zap.Error(err))
		return 1
	}

	// PostgreSQL schemas are managed by cmd/migrate
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Error("Failed to migrate sqlite schema", zap.Error(err))
			return 1
		}
	}

	guard, err := cache.OpenCheckoutGuard(ctx, cfg.Redis, log)
	if err != nil {
		log.Error("Failed to open checkout guard", zap.Error(err))
		return 1
	}
	defer func() {
		_ = guard.Close()
	}()

	userRepo := persistence.NewGormUserRepository(db.DB)
	menuRepo := persistence.NewGormMenuItemRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	reservationRepo := persistence.NewGormReservationRepository(db.DB)

	var uow trade.SettlementUnitOfWork
	if cfg.Settlement.Atomic {
		uow = persistence.NewGormSettlementUnitOfWork(db.DB)
	}

	var gateway tradeapp.PaymentGateway
	if cfg.Stripe.SecretKey != "" {
		gateway = payment.NewStripeIntentClient(cfg.Stripe, log)
	} else {
		log.Warn("Stripe secret key not configured, payment intents are disabled")
	}

	settlementMetrics, err := telemetry.NewSettlementMetrics(providers.Meter("bistro/settlement"))
	if err != nil {
		log.Error("Failed to register settlement metrics", zap.Error(err))
		return 1
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(jwtService, userRepo, log)
	userService := identityapp.NewUserService(userRepo, log)
	menuService := catalogapp.NewMenuService(menuRepo, log)
	reviewService := catalogapp.NewReviewService(reviewRepo, log)
	cartService := tradeapp.NewCartService(cartRepo, menuRepo, log)
	paymentService := tradeapp.NewPaymentService(cartRepo, paymentRepo, uow, guard, gateway,
		tradeapp.SettlementOptions{
			Atomic:   cfg.Settlement.Atomic,
			GuardTTL: cfg.Settlement.GuardTTL,
			Recorder: settlementMetrics,
		}, log)
	reportService := reportapp.NewReportService(reportRepo, log)
	reservationService := reservationapp.NewReservationService(reservationRepo, log)

	var reconciler *tradeapp.CartReconciler
	if cfg.Settlement.ReconcileEnabled {
		reconciler = tradeapp.NewCartReconciler(tradeapp.ReconcilerConfig{
			Interval:  cfg.Settlement.ReconcileInterval,
			Grace:     cfg.Settlement.ReconcileGrace,
			BatchSize: cfg.Settlement.ReconcileBatchSize,
		}, paymentRepo, paymentService, log)
		if err := reconciler.Start(ctx); err != nil {
			log.Error("Failed to start cart reconciler", zap.Error(err))
			return 1
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitRequests > 0 {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		go limiter.Run(ctx)
	}

	var engineOpts []router.EngineOption
	if providers.Enabled() {
		engineOpts = append(engineOpts, router.WithTracing(providers.TracerProvider()))
	}
	engine, err := router.NewEngine(cfg, log, engineOpts...)
	if err != nil {
		log.Error("Failed to build HTTP engine", zap.Error(err))
		return 1
	}

	handlers := router.Handlers{
		System:      handler.NewSystemHandler(cfg.App.Name, db),
		Identity:    handler.NewIdentityHandler(authService, userService),
		Catalog:     handler.NewCatalogHandler(menuService, reviewService),
		Trade:       handler.NewTradeHandler(cartService, paymentService),
		Report:      handler.NewReportHandler(reportService),
		Reservation: handler.NewReservationHandler(reservationService),
	}
	gate := router.Gate{
		Tokens:  jwtService,
		Roles:   authService,
		Limiter: limiter,
	}
	routes := router.NewRouter(engine).Register(router.BistroRoutes(handlers, gate)...).Setup()
	log.Info("Routes mounted", zap.Int("count", len(routes)))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	code := 0
	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
		code = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if reconciler != nil {
		if err := reconciler.Stop(shutdownCtx); err != nil {
			log.Error("Cart reconciler did not stop cleanly", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
	return code
}
