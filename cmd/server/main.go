package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/cart"
	catalogapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/catalog"
	contactapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/contact"
	orderapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/order"
	reviewapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/review"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/auth"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/cache"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/config"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/event"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/logger"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/notification"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/persistence"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/scheduler"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/infrastructure/telemetry"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/handler"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/middleware"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/interfaces/http/router"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		ExportLogs:        cfg.Telemetry.ExportLogs,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := tel.BridgeLogger(baseLog)
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
		_ = logger.Sync(log)
	}()

	log.Info("Starting FreshMart",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			DBName:      cfg.Database.DBName,
			IncludeVars: !cfg.App.IsProduction(),
		}); err != nil {
			log.Warn("Database tracing unavailable", zap.Error(err))
		}
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to access connection pool", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	stockLedger := persistence.NewGormStockLedger(db.DB)

	// Domain events
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(orderapp.NewOrderPlacedHandler(log))

	// Application services
	storefrontService := catalogapp.NewStorefrontService(productRepo, categoryRepo, reviewRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, stockLedger, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo, log)
	orderService := orderapp.NewOrderService(orderRepo)
	reviewService := reviewapp.NewReviewService(reviewRepo, productRepo, log)
	contactService := contactapp.NewContactService(contactRepo, notification.NewLogNotifier(log, cfg.App.AdminEmail), log)

	checkoutService := orderapp.NewCheckoutService(
		persistence.NewGormTransactionScope(db.DB),
		orderRepo,
		orderapp.CheckoutConfig{
			MaxRetries:     cfg.Checkout.MaxRetries,
			RetryBackoff:   cfg.Checkout.RetryBackoff,
			IdempotencyTTL: cfg.Checkout.IdempotencyTTL,
		},
		log,
	)
	checkoutService.SetRetryClassifier(persistence.IsTransient)
	checkoutService.SetEventPublisher(eventBus)
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	checkoutService.SetIdempotencyStore(idempotencyStore)
	if checkoutMetrics, err := telemetry.NewCheckoutMetrics(otel.Meter("freshmart/checkout")); err != nil {
		log.Warn("Checkout metrics unavailable", zap.Error(err))
	} else {
		checkoutService.SetMetrics(checkoutMetrics)
	}

	// Housekeeping
	if cfg.Cart.AnonymousTTL > 0 {
		sweeper, err := scheduler.NewCartSweeper(scheduler.CartSweeperConfig{
			TTL:      cfg.Cart.AnonymousTTL,
			Interval: cfg.Cart.SweepInterval,
		}, cartRepo, log)
		if err != nil {
			log.Fatal("Invalid cart sweeper configuration", zap.Error(err))
		}
		if err := sweeper.Start(ctx); err != nil {
			log.Fatal("Failed to start cart sweeper", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = sweeper.Stop(stopCtx)
		}()
	}

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.CartSessionHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(otel.Meter("freshmart/http"), log))

	var contactLimiter *middleware.RateLimiter
	if cfg.HTTP.ContactRateLimit > 0 {
		contactLimiter = middleware.NewRateLimiter(ctx, cfg.HTTP.ContactRateLimit, cfg.HTTP.ContactRateWindow)
		log.Info("Contact form rate limiting enabled",
			zap.Int("requests", cfg.HTTP.ContactRateLimit),
			zap.Duration("window", cfg.HTTP.ContactRateWindow),
		)
	}

	authn := middleware.NewAuthenticator(auth.NewJWTService(cfg.JWT), log)
	handlers := router.Handlers{
		System:      handler.NewSystemHandler(cfg.App.Name, sqlDB),
		Storefront:  handler.NewStorefrontHandler(storefrontService),
		Cart:        handler.NewCartHandler(cartService),
		Orders:      handler.NewOrderHandler(checkoutService, orderService),
		Reviews:     handler.NewReviewHandler(reviewService),
		Contact:     handler.NewContactHandler(contactService),
		Categories:  handler.NewCategoryHandler(categoryService),
		Products:    handler.NewProductHandler(productService),
		AdminOrders: handler.NewAdminOrderHandler(orderService),
	}
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.Groups(handlers, authn, contactLimiter)...).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	log.Info("Server exited gracefully")
}
