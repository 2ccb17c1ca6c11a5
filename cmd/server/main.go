package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	ideaapp "github.com/ideagen/backend/internal/application/idea"
	"github.com/ideagen/backend/internal/domain/idea"
	"github.com/ideagen/backend/internal/infrastructure/cache"
	"github.com/ideagen/backend/internal/infrastructure/config"
	"github.com/ideagen/backend/internal/infrastructure/logger"
	"github.com/ideagen/backend/internal/infrastructure/persistence"
	"github.com/ideagen/backend/internal/infrastructure/telemetry"
	"github.com/ideagen/backend/internal/interfaces/http/handler"
	"github.com/ideagen/backend/internal/interfaces/http/middleware"
	"github.com/ideagen/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/ideagen/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Website Idea Generator API
//	@version		1.0
//	@description	Generates hero, about and contact sections for a website idea and stores them.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	tel, err := telemetry.Start(ctx, telemetry.Settings{
		ServiceName:    cfg.Telemetry.ServiceName,
		Endpoint:       cfg.Telemetry.CollectorEndpoint,
		Insecure:       cfg.Telemetry.Insecure,
		Traces:         cfg.Telemetry.Enabled,
		SamplingRatio:  cfg.Telemetry.SamplingRatio,
		Metrics:        cfg.Telemetry.MetricsEnabled,
		ExportInterval: cfg.Telemetry.MetricsExportInterval,
		Logs:           cfg.Telemetry.LogsEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	// Rebuild the logger so entries also reach the collector.
	if tel.LogsEnabled() {
		otelCore := tel.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))
		if log, err = logger.New(logCfg, otelCore); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer logger.Sync(log)

	log.Info("Starting website idea backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	// Database
	sqlLog := logger.NewSQLLogger(log, logger.SQLLogConfig{
		Level:         logger.SQLLogLevel(cfg.Log.Level),
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
	})
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, sqlLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBSystem:        dbSystem(cfg.Database.Driver),
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if tel.MetricsEnabled() {
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatal("Failed to access connection pool", zap.Error(err))
		}
		unregister, err := telemetry.RegisterDBPoolMetrics(tel.Meter("ideagen.db"), sqlDB)
		if err != nil {
			log.Fatal("Failed to register database pool metrics", zap.Error(err))
		}
		defer func() { _ = unregister() }()
	}

	// Store, optionally fronted by the Redis read cache
	var repo idea.Repository = persistence.NewGormIdeaRepository(db.DB)

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, serving without cache", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		} else {
			defer func() { _ = redisClient.Close() }()
			repo = cache.NewCachedIdeaRepository(repo, redisClient,
				cache.WithIdeaTTL(cfg.Redis.TTL),
				cache.WithCacheLogger(log),
			)
			log.Info("Redis idea cache enabled", zap.String("addr", cfg.Redis.Addr()), zap.Duration("ttl", cfg.Redis.TTL))
		}
	}

	ideaService := ideaapp.NewService(repo)
	if tel.MetricsEnabled() {
		ideaMetrics, err := telemetry.NewIdeaMetrics(tel.Meter("ideagen.idea"))
		if err != nil {
			log.Fatal("Failed to create idea metrics", zap.Error(err))
		}
		ideaService.SetIdeaMetrics(ideaMetrics)
	}

	// HTTP engine
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Middleware order matters:
	// request id first so every later log line and span carries it,
	// recovery before anything that may panic,
	// CORS before the body and rate limits so preflights are never throttled.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health"))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   []string{"/health"},
	}))
	engine.Use(middleware.SpanEnricher())
	if tel.MetricsEnabled() {
		engine.Use(middleware.HTTPMetrics(tel.Meter("http.server")))
	}
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowCredentials = true
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter, closeLimiter := newRateLimiter(cfg.HTTP, redisClient, log)
		defer closeLimiter()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	healthChecks := []handler.HealthCheck{{Name: "database", Check: db.Ping}}
	if redisClient != nil {
		healthChecks = append(healthChecks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}
	engine.GET("/health", handler.NewHealthHandler(healthChecks...).Health)

	engine.GET("/swagger/*any",
		middleware.DocsAccess(middleware.DocsAccessConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// API routes
	routes := router.Groups(router.Handlers{
		Ideas:  handler.NewIdeaHandler(ideaService),
		System: handler.NewSystemHandler(cfg.App.Name, telemetry.ServiceVersion),
	})
	router.Mount(engine, routes...)
	log.Debug("API routes mounted", zap.Strings("endpoints", router.Endpoints(routes...)))

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Flush telemetry after the last request has been served.
	if err := tel.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newRateLimiter shares the budget through Redis when a client is available
// and falls back to a per-process limiter otherwise.
func newRateLimiter(cfg config.HTTPConfig, client *redis.Client, log *zap.Logger) (middleware.Limiter, func()) {
	if client != nil {
		limiter, err := middleware.NewRedisRateLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow)
		if err == nil {
			return limiter, func() {}
		}
		log.Warn("Falling back to in-memory rate limiter", zap.Error(err))
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	return limiter, limiter.Close
}

func dbSystem(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
