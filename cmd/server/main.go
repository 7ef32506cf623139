package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appaudit "github.com/alexrentacar/backoffice/internal/application/audit"
	appcatalog "github.com/alexrentacar/backoffice/internal/application/catalog"
	appfleet "github.com/alexrentacar/backoffice/internal/application/fleet"
	appidentity "github.com/alexrentacar/backoffice/internal/application/identity"
	appparty "github.com/alexrentacar/backoffice/internal/application/party"
	apprental "github.com/alexrentacar/backoffice/internal/application/rental"
	appreport "github.com/alexrentacar/backoffice/internal/application/report"
	appsettlement "github.com/alexrentacar/backoffice/internal/application/settlement"
	"github.com/alexrentacar/backoffice/internal/application/upload"
	appworkshop "github.com/alexrentacar/backoffice/internal/application/workshop"
	"github.com/alexrentacar/backoffice/internal/infrastructure/auth"
	"github.com/alexrentacar/backoffice/internal/infrastructure/cache"
	"github.com/alexrentacar/backoffice/internal/infrastructure/config"
	"github.com/alexrentacar/backoffice/internal/infrastructure/crypto"
	"github.com/alexrentacar/backoffice/internal/infrastructure/event"
	"github.com/alexrentacar/backoffice/internal/infrastructure/logger"
	"github.com/alexrentacar/backoffice/internal/infrastructure/persistence"
	"github.com/alexrentacar/backoffice/internal/infrastructure/storage"
	"github.com/alexrentacar/backoffice/internal/infrastructure/telemetry"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/handler"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/middleware"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/alexrentacar/backoffice/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Rental Back-Office API
//	@version		1.0
//	@description	Fleet, rentals, workshop and weekly owner settlement for a vehicle rental agency.

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

	baseLog, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log := telemetry.Bridge(baseLog, logProvider, logger.ParseLevel(cfg.Log.Level))
	defer func() { _ = log.Sync() }()

	log.Info("Starting rental back-office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServerAddress,
		ApplicationName:   serviceName,
		BasicAuthUser:     cfg.Telemetry.ProfilingAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilingAuthPassword,
	}, log)
	if err != nil {
		log.Warn("Profiler disabled", zap.Error(err))
	}
	if cfg.Telemetry.SpanProfilesEnabled && profiler != nil && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// PII columns are sealed with the field cipher; the serializer must be
	// registered before the first query.
	key, err := cfg.Crypto.Key()
	if err != nil {
		log.Fatal("Invalid field encryption key", zap.Error(err))
	}
	cipher, err := crypto.NewFieldCipher(key)
	if err != nil {
		log.Fatal("Failed to create field cipher", zap.Error(err))
	}
	crypto.Register(crypto.NewEncryptedSerializer(cipher, log))

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected")

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log).Register(db.DB); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("backoffice/db"), sqlDB, cfg.Telemetry.DBSlowQueryThresh)
		if err == nil {
			err = dbMetrics.Register(db.DB)
		}
		if err != nil {
			log.Warn("Database metrics disabled", zap.Error(err))
		}
	}

	cacheFactory := cache.NewFactory(cfg.Redis, cache.WithLogger(log))
	reportCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create cache", zap.Error(err))
	}
	var revocations auth.Revocations = auth.NewMemoryRevocations()
	if client, err := cacheFactory.Client(); err == nil {
		revocations = auth.NewRedisRevocations(client)
	}

	objects, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	uploads := upload.NewService(objects, log)

	store := persistence.NewGormStore(db.DB, cipher)

	settlementOpts := []appsettlement.Option{}
	if m, err := telemetry.NewSettlementMetrics(meterProvider.Meter("backoffice/settlement")); err == nil {
		settlementOpts = append(settlementOpts, appsettlement.WithMetrics(m))
	} else {
		log.Warn("Settlement metrics disabled", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(store.Users(), store.AccessLogs(), jwtService, revocations, log)
	userService := appidentity.NewUserService(store, jwtService, revocations, log)
	catalogService := appcatalog.NewService(store, uploads, log)
	partyService := appparty.NewService(store, uploads, log)
	fleetService := appfleet.NewService(store, uploads, log)
	reportService := appreport.NewService(store.Reports(), reportCache, cfg.Report.DashboardCacheTTL, log)
	eventBus := event.NewInMemoryEventBus(log.Named("events"))
	eventBus.Subscribe(appreport.NewDashboardInvalidator(reportService))
	rentalService := apprental.NewService(store, log, apprental.WithEventPublisher(eventBus))
	workshopService := appworkshop.NewService(store, log)
	auditService := appaudit.NewService(store, log)
	settlementService := appsettlement.NewService(store, appsettlement.Config{
		PaymentWeekday:    cfg.Settlement.PaymentDeadlineWeekday,
		DefaultDaysWorked: cfg.Settlement.DefaultDaysWorked,
	}, log, settlementOpts...)
	profitService := appsettlement.NewProfitService(store, log)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id must exist before logging and tracing,
	// and the span must exist before metrics and profiling labels read it.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders(cfg.Cookie.Secure, "/swagger"))
	engine.Use(middleware.CORS(middleware.CORSPolicy{
		Origins: cfg.HTTP.CORSAllowOrigins,
		Methods: cfg.HTTP.CORSAllowMethods,
		Headers: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: serviceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.HTTPMetrics(meterProvider, log))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   profiler != nil && profiler.IsEnabled(),
		SkipPaths: []string{"/health"},
	}))
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	var cachePinger handler.Pinger
	if cfg.Redis.Enabled {
		cachePinger = cacheFactory
	}
	systemHandler := handler.NewSystemHandler(version, db, cachePinger)
	engine.GET("/health", systemHandler.Health)

	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		Validator:  authService,
		CookieName: cfg.Cookie.Name,
		Logger:     log,
	})

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	if local, ok := objects.(*storage.LocalStorage); ok {
		engine.Static("/uploads", local.Root())
	}

	guards := router.Guards{
		Auth:       jwtMiddleware,
		Permission: middleware.PermissionConfig{Logger: log},
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter := middleware.NewRateLimiter(ctx, cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		guards.LoginRate = middleware.RateLimitByKey(loginLimiter, middleware.LoginRateLimitKey)
	}

	router.BackOffice(engine, router.Handlers{
		Auth:       handler.NewAuthHandler(authService, cfg.Cookie),
		User:       handler.NewUserHandler(userService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Party:      handler.NewPartyHandler(partyService),
		Vehicle:    handler.NewVehicleHandler(fleetService),
		Rental:     handler.NewRentalHandler(rentalService),
		Workshop:   handler.NewWorkshopHandler(workshopService),
		Report:     handler.NewReportHandler(reportService),
		Audit:      handler.NewAuditHandler(auditService),
		Settlement: handler.NewSettlementHandler(settlementService, profitService),
		System:     systemHandler,
	}, guards).Setup()

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
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := cacheFactory.Close(); err != nil {
		log.Warn("Error closing Redis client", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if profiler != nil {
		_ = profiler.Stop()
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"metrics": meterProvider.Shutdown,
		"tracing": tracerProvider.Shutdown,
		"logs":    logProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			baseLog.Warn("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
