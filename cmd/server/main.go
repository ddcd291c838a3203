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

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/segyhp/loan-simulator/internal/config"
	"github.com/segyhp/loan-simulator/internal/handler"
	"github.com/segyhp/loan-simulator/internal/metrics"
	"github.com/segyhp/loan-simulator/internal/repository"
	"github.com/segyhp/loan-simulator/internal/scheduler"
	"github.com/segyhp/loan-simulator/internal/service"
	"github.com/segyhp/loan-simulator/pkg/logger"
)

const (
	limiterCleanupSchedule = "0 */10 * * * *"
	limiterIdleTimeout     = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(log)

	// flush before exiting, os.Exit skips deferred calls
	if err := run(cfg, log); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	jobs := scheduler.New(log, collector)
	checks := make(map[string]handler.CheckFunc)

	// Initialize result cache
	var cache repository.ResultCache
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		redisClient := initRedis(cfg)
		defer redisClient.Close()

		redisCache := repository.NewRedisCache(redisClient, "loan-simulator:")
		cache = redisCache
		checks["redis"] = redisCache.Ping
	case config.CacheDriverMemory:
		memoryCache := repository.NewMemoryCache()
		cache = memoryCache
		if err := jobs.Add(scheduler.CachePurgeJob(cfg.Cache.PurgeSchedule, memoryCache, log)); err != nil {
			return err
		}
	}

	// Initialize product catalog
	products := repository.NewStaticProductRepository()
	if cfg.Products.Source == config.ProductSourcePostgres {
		db, err := initDB(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		checks["database"] = db.PingContext

		catalog := repository.NewProductCatalog(repository.NewProductRepository(db))
		if _, err := catalog.Refresh(ctx); err != nil {
			log.Warn("Initial product catalog load failed, serving from database", zap.Error(err))
		}
		if err := jobs.Add(scheduler.CatalogRefreshJob(cfg.Products.RefreshSchedule, catalog, log)); err != nil {
			return err
		}
		products = catalog
	}

	loanService := service.NewLoanService(products, cache, cfg.Cache.TTL, collector, log)

	routerOpts := handler.RouterOptions{
		Logger:   log,
		Metrics:  collector,
		Gatherer: registry,
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter := handler.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		if err := jobs.Add(scheduler.LimiterCleanupJob(limiterCleanupSchedule, limiter, limiterIdleTimeout)); err != nil {
			return err
		}
		routerOpts.RateLimiter = limiter
	}

	// Setup routes
	router := handler.NewRouter(
		handler.NewLoanHandler(loanService, log),
		handler.NewHealthHandler(cfg.Health.Timeout, checks),
		routerOpts,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	jobs.Start()

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.Server.Env),
			zap.String("cache", cfg.Cache.Driver),
			zap.String("products", cfg.Products.Source),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	jobs.Stop(shutdownCtx)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited")
	return nil
}

func initDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sqlx.DB, error) {
	db, err := repository.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.RunMigrations {
		if err := repository.RunMigrations(db, log); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
