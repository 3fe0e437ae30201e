package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/hmendez/stockledger/internal/adapter/http"
	"github.com/hmendez/stockledger/internal/adapter/http/handler"
	"github.com/hmendez/stockledger/internal/adapter/http/middleware"
	postgresRepo "github.com/hmendez/stockledger/internal/adapter/repository/postgres"
	redisRepo "github.com/hmendez/stockledger/internal/adapter/repository/redis"
	"github.com/hmendez/stockledger/internal/infrastructure/config"
	"github.com/hmendez/stockledger/internal/infrastructure/logger"
	"github.com/hmendez/stockledger/internal/infrastructure/metrics"
	"github.com/hmendez/stockledger/internal/infrastructure/postgres"
	"github.com/hmendez/stockledger/internal/infrastructure/redis"
	"github.com/hmendez/stockledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	actorRepo := postgresRepo.NewActorRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, entryRepo, idGen, retrier, appMetrics)
	directoryUC := usecase.NewDirectoryUseCase(accountRepo, entryRepo, actorRepo, appLogger)
	seriesUC := usecase.NewSeriesUseCase(accountRepo, entryRepo, cache, cfg.SeriesCacheTTL, appLogger)

	// Handlers
	accountHandler := handler.NewAccountHandler(ledgerUC, directoryUC)
	entryHandler := handler.NewEntryHandler(ledgerUC, directoryUC)
	seriesHandler := handler.NewSeriesHandler(seriesUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		EntryHandler:     entryHandler,
		SeriesHandler:    seriesHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		HTTPMetrics:      middleware.NewHTTPMetrics(registry),
		MetricsHandler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:           appLogger,
		RateLimit:        cfg.RateLimit,
		RateBurst:        cfg.RateBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
