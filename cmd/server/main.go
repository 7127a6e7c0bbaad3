package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/catalog"
	competitorapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/competitor"
	dashboardapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/dashboard"
	financeapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/finance"
	pricingapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/pricing"
	reportapp "github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/application/report"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/domain/pricing"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/auth"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/config"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/logger"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/migration"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/persistence"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/telemetry"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/handler"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/middleware"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pricing backend: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Log export needs a logger of its own, so the final logger is built
	// once the provider exists.
	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		return fmt.Errorf("failed to initialize log export: %w", err)
	}
	log, err := logger.New(logCfg, logsProvider.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting pricing backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles {
		tracerProvider.EnableSpanProfiles()
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to start profiler: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := profiler.Stop(); err != nil {
			log.Warn("Error stopping profiler", zap.Error(err))
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down meter provider", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down tracer provider", zap.Error(err))
		}
		if err := logsProvider.Shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down logger provider", zap.Error(err))
		}
	}()

	var meter metric.Meter
	if meterProvider.IsEnabled() {
		meter = meterProvider.Meter(cfg.Telemetry.ServiceName)
	}

	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	checks := map[string]handler.HealthCheck{
		"database": db.Ping,
	}

	var (
		blacklist auth.TokenBlacklist
		limiter   middleware.Limiter
	)
	if cfg.Redis.Enabled {
		client, err := auth.NewRedisClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close()
		}()
		blacklist = auth.NewRedisTokenBlacklist(client)
		limiter = middleware.NewRedisLimiter(client, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		checks["redis"] = redisCheck(client)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		limiter = middleware.NewInMemoryLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	historyRepo := persistence.NewGormPriceHistoryRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	fixedCostRepo := persistence.NewGormFixedCostRepository(db.DB)
	taxRepo := persistence.NewGormTaxConfigRepository(db.DB)
	competitorRepo := persistence.NewGormCompetitorPriceRepository(db.DB)
	salesRepo := persistence.NewGormMonthlySalesRepository(db.DB)

	// Application services
	policy := pricing.AllocationPolicy{DampeningFactor: cfg.Pricing.DampeningFactor}
	engine := pricing.NewEngine(policy, cfg.Pricing.CatalogWorkers)

	calculator := pricingapp.NewCalculatorService(engine, productRepo, fixedCostRepo, taxRepo, cfg.Pricing.DefaultMarginPercent)
	if meter != nil {
		pricingMetrics, err := telemetry.NewPricingMetrics(meter)
		if err != nil {
			log.Warn("Pricing metrics unavailable", zap.Error(err))
		} else {
			calculator.SetMetrics(pricingMetrics)
		}
	}

	productService := catalogapp.NewProductService(productRepo, supplierRepo, historyRepo)
	productService.SetTransactor(db)
	supplierService := catalogapp.NewSupplierService(supplierRepo)
	fixedCostService := financeapp.NewFixedCostService(fixedCostRepo, productRepo, policy)
	taxService := financeapp.NewTaxConfigService(taxRepo)
	competitorService := competitorapp.NewCompetitorService(competitorRepo, productRepo)
	dashboardService := dashboardapp.NewDashboardService(productRepo, salesRepo)
	reportService := reportapp.NewReportService(productRepo, competitorRepo, salesRepo, calculator)

	handlers := router.Handlers{
		Product:    handler.NewProductHandler(productService),
		Supplier:   handler.NewSupplierHandler(supplierService),
		Finance:    handler.NewFinanceHandler(fixedCostService, taxService),
		Pricing:    handler.NewPricingHandler(calculator),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Competitor: handler.NewCompetitorHandler(competitorService),
		Report:     handler.NewReportHandler(reportService),
		System:     handler.NewSystemHandler(cfg.App.Name, checks),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	httpEngine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := httpEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Logger - Log requests with a request-scoped logger
	// 3. Recovery - Catch panics
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. Tracing and metrics
	httpEngine.Use(middleware.RequestID())
	httpEngine.Use(logger.GinMiddleware(log))
	httpEngine.Use(logger.Recovery(log))
	httpEngine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	httpEngine.Use(middleware.CORSWithConfig(corsConfig))
	httpEngine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	httpEngine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	httpEngine.Use(middleware.SpanAttributes())
	httpEngine.Use(middleware.HTTPMetrics(meter, log))

	// Liveness probe for load balancers, outside API versioning
	httpEngine.GET("/health", handlers.System.Health)

	r := router.NewRouter(httpEngine, router.WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(auth.NewJWTService(cfg.JWT))
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, cfg.JWT.SkipPaths...)
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	if cfg.HTTP.RateLimitEnabled {
		r.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = profiler.IsEnabled()
	r.Use(middleware.Profiling(profilingConfig))

	r.Register(router.DomainGroups(handlers)...).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        httpEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		return err
	}

	log.Info("Server exited gracefully")
	return nil
}

// openDatabase connects and brings the schema up to date. Postgres runs
// the versioned migrations; sqlite is a development store and auto-migrates.
func openDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
	)

	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}

	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	} else {
		sqlDB, err := db.DB.DB()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		migrator, err := migration.New(sqlDB, cfg.Database.MigrationsPath, log)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := migrator.Up(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Database tracing unavailable", zap.Error(err))
	}

	log.Info("Database connected successfully", zap.String("driver", db.Driver))
	return db, nil
}

func redisCheck(client redis.UniversalClient) handler.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
