package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	"github.com/bazaarhq/storefront_backoffice/internal/core/services"
	"github.com/bazaarhq/storefront_backoffice/internal/handlers"
	"github.com/bazaarhq/storefront_backoffice/internal/middleware"
	"github.com/bazaarhq/storefront_backoffice/internal/platform/config"
	"github.com/bazaarhq/storefront_backoffice/internal/platform/messaging"
	"github.com/bazaarhq/storefront_backoffice/internal/platform/redisx"
	"github.com/bazaarhq/storefront_backoffice/internal/repositories/database/pgsql"
	"github.com/bazaarhq/storefront_backoffice/internal/workers"
	"github.com/bazaarhq/storefront_backoffice/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title Storefront Back-office API
// @version 1.0
// @description Ledger, expenses, delivery areas and reports for the storefront back office.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var rdb *redis.Client
	var locker ports.Locker = redisx.LocalLocker{}
	if cfg.RedisAddress != "" {
		rdb, err = redisx.NewClient(ctx, cfg.RedisAddress, cfg.RedisPassword, logger)
		if err != nil {
			logger.Error("Failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer rdb.Close()
		locker = redisx.NewLocker(rdb)
	} else {
		logger.Warn("REDIS_ADDRESS not set. Rate limits and worker locks are local to this instance.")
	}

	var publisher ports.LedgerEventPublisher = messaging.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaLedgerTopic, logger)
		if err != nil {
			logger.Error("Failed to create Kafka publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
		publisher = kp
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close ledger event publisher", slog.String("error", err.Error()))
		}
	}()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, rdb); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	worker := workers.NewExpensePostingWorker(serviceContainer.Expense, locker, logger, cfg.PostingRetryInterval, cfg.PostingRetryBatchSize)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	<-workerDone
	logger.Info("Server stopped")
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	c.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	c.AddAllowHeaders("Origin", "Content-Type", "Authorization", "X-Request-ID")
	c.AddExposeHeaders("Content-Length", "Content-Disposition", "X-Request-ID")
	return c
}
