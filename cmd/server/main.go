package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	catalogapp "github.com/stockflow/backend/internal/application/catalog"
	identityapp "github.com/stockflow/backend/internal/application/identity"
	inventoryapp "github.com/stockflow/backend/internal/application/inventory"
	notificationapp "github.com/stockflow/backend/internal/application/notification"
	partnerapp "github.com/stockflow/backend/internal/application/partner"
	purchasingapp "github.com/stockflow/backend/internal/application/purchasing"
	reportapp "github.com/stockflow/backend/internal/application/report"
	salesapp "github.com/stockflow/backend/internal/application/sales"
	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stockflow/backend/internal/infrastructure/event"
	"github.com/stockflow/backend/internal/infrastructure/logger"
	"github.com/stockflow/backend/internal/infrastructure/persistence"
	"github.com/stockflow/backend/internal/infrastructure/telemetry"
	"github.com/stockflow/backend/internal/interfaces/http/handler"
	"github.com/stockflow/backend/internal/interfaces/http/middleware"
	"github.com/stockflow/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting stockflow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	if tracerProvider.IsEnabled() {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Warn("failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	stockLevelRepo := persistence.NewGormStockLevelRepository(db.DB)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	requisitionRepo := persistence.NewGormRequisitionRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	goodsReceivedRepo := persistence.NewGormGoodsReceivedRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	sequenceRepo := persistence.NewGormDocumentSequenceRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("error closing redis client", zap.Error(err))
			}
		}()
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo)
	productService := catalogapp.NewProductService(productRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	stockLevelService := inventoryapp.NewStockLevelService(stockLevelRepo, stockMovementRepo, productRepo)
	adjustmentService := inventoryapp.NewAdjustmentService(productRepo, adjustmentRepo, txScope)
	requisitionService := purchasingapp.NewRequisitionService(requisitionRepo, productRepo, userRepo, sequenceRepo)
	purchaseOrderService := purchasingapp.NewPurchaseOrderService(purchaseOrderRepo, supplierRepo, productRepo, sequenceRepo)
	goodsReceivedService := purchasingapp.NewGoodsReceivedService(goodsReceivedRepo, purchaseOrderRepo, productRepo, sequenceRepo, txScope)
	salesOrderService := salesapp.NewSalesOrderService(salesOrderRepo, customerRepo, productRepo, sequenceRepo)
	shipmentService := salesapp.NewShipmentService(shipmentRepo, salesOrderRepo, customerRepo, productRepo, sequenceRepo, txScope)
	notificationService := notificationapp.NewNotificationService(notificationRepo)
	dashboardService := reportapp.NewDashboardService(
		productRepo, stockLevelRepo, stockMovementRepo,
		requisitionRepo, purchaseOrderRepo, goodsReceivedRepo,
		salesOrderRepo, shipmentRepo,
	)

	// Event bus and post-commit notification fan-out
	eventBus := event.NewInMemoryEventBus(log)
	if cfg.Notification.Enabled {
		eventBus.Subscribe(notificationapp.NewDocumentEventHandler(userRepo, notificationRepo, log))
		eventBus.Subscribe(notificationapp.NewLowStockEventHandler(userRepo, notificationRepo, cfg.Notification.LowStockCooldown, log))
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("error stopping event bus", zap.Error(err))
		}
	}()

	// Daily purge of notifications past the retention window
	if cfg.Notification.Enabled && cfg.Notification.RetentionDays > 0 {
		purgeCtx, purgeCancel := context.WithCancel(context.Background())
		defer purgeCancel()
		go func() {
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()
			for {
				removed, err := notificationService.PurgeOlderThan(purgeCtx, cfg.Notification.RetentionDays)
				if err != nil {
					log.Error("notification retention purge failed", zap.Error(err))
				} else if removed > 0 {
					log.Info("purged expired notifications", zap.Int64("removed", removed))
				}
				select {
				case <-ticker.C:
				case <-purgeCtx.Done():
					return
				}
			}
		}()
	}

	adjustmentService.SetEventPublisher(eventBus)
	requisitionService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)
	goodsReceivedService.SetEventPublisher(eventBus)
	salesOrderService.SetEventPublisher(eventBus)
	shipmentService.SetEventPublisher(eventBus)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	if tracerProvider.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	engine.Use(middleware.JWTAuthWithConfig(middleware.JWTConfig{
		Validator: authService,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	engine.GET("/health", handler.HealthCheck(db))

	// API routes
	router.New(engine).Register(
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
		handler.NewProductHandler(productService),
		handler.NewSupplierHandler(supplierService),
		handler.NewCustomerHandler(customerService),
		handler.NewInventoryHandler(stockLevelService),
		handler.NewAdjustmentHandler(adjustmentService),
		handler.NewRequisitionHandler(requisitionService),
		handler.NewPurchaseOrderHandler(purchaseOrderService),
		handler.NewGoodsReceivedHandler(goodsReceivedService),
		handler.NewSalesOrderHandler(salesOrderService),
		handler.NewShipmentHandler(shipmentService),
		handler.NewNotificationHandler(notificationService),
		handler.NewDashboardHandler(dashboardService),
		handler.NewSystemHandler(version),
	).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited gracefully")
}
