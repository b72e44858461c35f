package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/adapters"
	"github.com/shard-legends/codex-service/internal/config"
	"github.com/shard-legends/codex-service/internal/database"
	"github.com/shard-legends/codex-service/internal/handlers"
	"github.com/shard-legends/codex-service/internal/loader"
	"github.com/shard-legends/codex-service/internal/service"
	"github.com/shard-legends/codex-service/internal/storage"
	"github.com/shard-legends/codex-service/pkg/logger"
	"github.com/shard-legends/codex-service/pkg/metrics"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Encoding); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set service start time for metrics
	startTime := time.Now()
	go func() {
		for {
			metrics.ServiceUptime.Set(time.Since(startTime).Seconds())
			time.Sleep(cfg.Metrics.UpdateInterval)
		}
	}()

	// Set service info
	metrics.ServiceInfo.WithLabelValues("1.0.0", time.Now().Format(time.RFC3339)).Set(1)

	metricsAdapter := adapters.NewMetricsAdapter()

	// Initialize database (optional, backs saved snapshots)
	var (
		db        *database.DB
		snapshots storage.SnapshotRepository
	)
	if cfg.SnapshotsEnabled() {
		db, err = database.NewDB(&cfg.Database, cfg.Timeouts.DatabaseHealth)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		snapshots = storage.NewSnapshotRepository(&storage.RepositoryDependencies{
			DB:               adapters.NewDatabaseAdapter(db),
			MetricsCollector: metricsAdapter,
		}, storage.DefaultMaxSnapshotsPerOwner)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.PingTimeout)
		err = snapshots.EnsureSchema(ctx)
		cancel()
		if err != nil {
			logger.Fatal("Failed to prepare snapshot schema", zap.Error(err))
		}
	} else {
		logger.Info("Database URL not set, saved snapshots disabled")
	}

	// Initialize document cache: Redis when configured, in-process otherwise
	var (
		redis *database.RedisClient
		cache storage.CacheInterface
	)
	if cfg.Redis.URL != "" {
		redis, err = database.NewRedisClient(&cfg.Redis, cfg.Timeouts.RedisHealth)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redis.Close()
		cache = adapters.NewCacheAdapter(redis)
	} else {
		cache = adapters.NewMemoryCache(cfg.Data.CacheTTL, 2*cfg.Data.CacheTTL)
	}
	logger.Info("Document cache initialized", zap.String("backend", cache.Backend()))

	// Initialize loader and dataset
	documentLoader := loader.New(loader.Config{
		RemoteURL:      cfg.Data.RemoteURL,
		LocalDir:       cfg.Data.LocalDir,
		RequestTimeout: cfg.Data.RequestTimeout,
		CacheTTL:       cfg.Data.CacheTTL,
	}, logger.Get(), loader.WithCache(cache, metricsAdapter))

	dataset := service.NewDatasetHolder(documentLoader, logger.Get())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.InitialLoad)
	if _, err := dataset.Reload(ctx); err != nil {
		// Service stays up and not ready; the refresh loop keeps retrying
		logger.Error("Initial dataset load failed", zap.Error(err))
	}
	cancel()

	refreshCtx, refreshCancel := context.WithCancel(context.Background())
	defer refreshCancel()

	go dataset.Run(refreshCtx, cfg.Data.RefreshInterval)

	// Initialize service layer
	serviceLayer := service.NewService(&service.ServiceDependencies{
		Dataset:   dataset,
		Snapshots: snapshots,
		Logger:    logger.Get(),
	})

	// Initialize handlers
	allHandlers := handlers.NewHandlers(&handlers.HandlerDependencies{
		Service: serviceLayer,
		DB:      db,
		Redis:   redis,
		Logger:  logger.Get(),
	})

	// Create public HTTP server
	publicServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      newPublicRouter(cfg, allHandlers),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Create internal HTTP server
	internalServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.InternalPort),
		Handler:      newInternalRouter(cfg, allHandlers),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start public server in a goroutine
	go func() {
		logger.Info("Starting Codex Service public server",
			zap.String("host", cfg.Server.Host),
			zap.String("port", cfg.Server.Port),
		)

		if err := publicServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start public server", zap.Error(err))
		}
	}()

	// Start internal server in a goroutine
	go func() {
		logger.Info("Starting Codex Service internal server",
			zap.String("host", cfg.Server.Host),
			zap.String("port", cfg.Server.InternalPort),
		)

		if err := internalServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start internal server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	refreshCancel()

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), cfg.Timeouts.GracefulShutdown)
	defer cancel()

	// Shutdown both servers
	shutdownErr := make(chan error, 2)

	go func() {
		if err := publicServer.Shutdown(ctx); err != nil {
			shutdownErr <- fmt.Errorf("public server shutdown error: %w", err)
		} else {
			shutdownErr <- nil
		}
	}()

	go func() {
		if err := internalServer.Shutdown(ctx); err != nil {
			shutdownErr <- fmt.Errorf("internal server shutdown error: %w", err)
		} else {
			shutdownErr <- nil
		}
	}()

	// Wait for both servers to shut down
	for i := 0; i < 2; i++ {
		if err := <-shutdownErr; err != nil {
			logger.Error("Server forced to shutdown", zap.Error(err))
		}
	}

	logger.Info("Servers exited")
}
