package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	assistantapp "github.com/bayup/backend/internal/application/assistant"
	catalogapp "github.com/bayup/backend/internal/application/catalog"
	financeapp "github.com/bayup/backend/internal/application/finance"
	identityapp "github.com/bayup/backend/internal/application/identity"
	paymentapp "github.com/bayup/backend/internal/application/payment"
	salesapp "github.com/bayup/backend/internal/application/sales"
	studioapp "github.com/bayup/backend/internal/application/studio"
	uploadsapp "github.com/bayup/backend/internal/application/uploads"
	"github.com/bayup/backend/internal/infrastructure/auth"
	"github.com/bayup/backend/internal/infrastructure/cache"
	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/bayup/backend/internal/infrastructure/email"
	"github.com/bayup/backend/internal/infrastructure/event"
	"github.com/bayup/backend/internal/infrastructure/llm"
	"github.com/bayup/backend/internal/infrastructure/logger"
	"github.com/bayup/backend/internal/infrastructure/payment"
	"github.com/bayup/backend/internal/infrastructure/persistence"
	"github.com/bayup/backend/internal/infrastructure/printing"
	"github.com/bayup/backend/internal/infrastructure/storage"
	"github.com/bayup/backend/internal/infrastructure/telemetry"
	"github.com/bayup/backend/internal/infrastructure/workflow"
	"github.com/bayup/backend/internal/interfaces/http/handler"
	"github.com/bayup/backend/internal/interfaces/http/middleware"
	"github.com/bayup/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/bayup/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Bayup API
//	@version		1.0
//	@description	Multi-tenant e-commerce backend: catalog, orders, finance, page builder and payments

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, version, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := tel.Logger(baseLog)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Bayup backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Redis is optional: token revocation and webhook idempotency fall back
	// to process memory
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory stores", zap.Error(err))
			redisClient = nil
		} else {
			defer func() { _ = redisClient.Close() }()
		}
	}
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}
	idempotency := cache.NewIdempotencyStore(redisClient, log)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	roleRepo := persistence.NewGormCustomRoleRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	productTypeRepo := persistence.NewGormProductTypeRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	activityRepo := persistence.NewGormActivityLogRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	incomeRepo := persistence.NewGormIncomeRepository(db.DB)
	receivableRepo := persistence.NewGormReceivableRepository(db.DB)
	payrollRepo := persistence.NewGormPayrollRepository(db.DB)
	taxRepo := persistence.NewGormTaxRateRepository(db.DB)
	shippingRepo := persistence.NewGormShippingOptionRepository(db.DB)
	shopPageRepo := persistence.NewGormShopPageRepository(db.DB)
	pageRepo := persistence.NewGormPageRepository(db.DB)

	// Domain events feed the activity log
	eventBus := event.NewInMemoryEventBus(log)
	recorder := event.NewActivityRecorder(activityRepo)
	eventBus.Subscribe(recorder, recorder.EventTypes()...)

	// Email goes through Temporal when enabled, inline otherwise
	mailer := email.NewMailer(email.NewResendClient(cfg.Email, log), cfg.App.FrontendURL, log)
	var starter workflow.Starter
	if cfg.Workflow.Enabled {
		temporalClient, err := workflow.Dial(cfg.Workflow, log)
		if err != nil {
			log.Warn("Temporal unavailable, sending email inline", zap.Error(err))
		} else {
			defer temporalClient.Close()
			worker := workflow.NewWorker(temporalClient, cfg.Workflow.TaskQueue, workflow.NewActivities(mailer), log)
			if err := worker.Start(); err != nil {
				log.Fatal("Failed to start workflow worker", zap.Error(err))
			}
			defer worker.Stop()
			starter = temporalClient
		}
	}
	notifier := workflow.NewNotifier(starter, cfg.Workflow.TaskQueue, mailer, log)

	storeMetrics, err := telemetry.NewStoreMetrics(tel.Meter())
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}

	pdf := printing.NewChromedpRenderer(cfg.Printing, log)
	defer func() { _ = pdf.Close() }()

	objectStorage, err := storage.NewObjectStorage(cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, planRepo, jwtService, log,
		identityapp.WithIdentityVerifier(auth.NewIdentityVerifier(cfg.Identity, log)),
		identityapp.WithTokenBlacklist(blacklist),
		identityapp.WithAuthEvents(eventBus),
		identityapp.WithAccountNotifier(notifier),
	)
	staffService := identityapp.NewStaffService(userRepo, roleRepo, blacklist, eventBus, notifier, log)
	adminService := identityapp.NewAdminService(planRepo, userRepo, orderRepo, log)

	productService := catalogapp.NewProductService(productRepo, variantRepo, collectionRepo, productTypeRepo, eventBus, log)
	collectionService := catalogapp.NewCollectionService(collectionRepo, productTypeRepo, productRepo)

	orderService := salesapp.NewOrderService(persistence.NewGormTransactionScope(db.DB), orderRepo, userRepo, log,
		salesapp.WithEventPublisher(eventBus),
		salesapp.WithNotifier(notifier),
		salesapp.WithOrderMetrics(storeMetrics),
		salesapp.WithReceiptRenderer(printing.NewReceiptRenderer(pdf, cfg.Printing.PaperWidthIn)),
	)
	shipmentService := salesapp.NewShipmentService(shipmentRepo, orderRepo, customerRepo, activityRepo)

	ledgerService := financeapp.NewLedgerService(expenseRepo, incomeRepo, receivableRepo, payrollRepo, log)
	settingsService := financeapp.NewSettingsService(taxRepo, shippingRepo)

	gateway := payment.NewWompiAdapter(payment.WompiConfigFromApp(cfg.Payment), log)
	paymentService := paymentapp.NewPaymentService(gateway, orderRepo, userRepo, idempotency, notifier, cfg.App.FrontendURL, log)
	paymentService.SetEventPublisher(eventBus)
	paymentService.SetMetrics(storeMetrics)

	uploadService := uploadsapp.NewUploadService(objectStorage, log)
	assistantService := assistantapp.NewAssistantService(llm.NewOpenAIClient(cfg.Assistant, log),
		orderRepo, productRepo, variantRepo, userRepo, log)
	studioService := studioapp.NewStudioService(shopPageRepo, pageRepo, userRepo, productRepo, log)

	// HTTP engine
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName), middleware.SpanAttributes())
	}
	if cfg.Telemetry.ProfilingEnabled {
		engine.Use(middleware.Profiling())
	}
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORS(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	var authLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		authLimit = middleware.RateLimit(authLimiter)
	}

	requireAuth := middleware.RequireAuth(authService, log)

	systemHandler := handler.NewSystemHandler(db, version)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, requireAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Staff:     handler.NewStaffHandler(staffService),
		Admin:     handler.NewAdminHandler(adminService),
		Product:   handler.NewProductHandler(productService, collectionService),
		Sales:     handler.NewSalesHandler(orderService, shipmentService),
		Finance:   handler.NewFinanceHandler(ledgerService),
		Settings:  handler.NewSettingsHandler(settingsService),
		Studio:    handler.NewStudioHandler(studioService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Upload:    handler.NewUploadHandler(uploadService),
		Assistant: handler.NewAssistantHandler(assistantService),
	}, router.Guards{
		Auth:       requireAuth,
		SuperAdmin: middleware.RequireSuperAdmin(),
		AuthLimit:  authLimit,
	})
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
