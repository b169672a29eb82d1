package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/http/handler"
	postgresRepo "github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/repository/postgres"
	redisRepo "github.com/farazahmedph003/GULL-2025-sub000/internal/adapter/repository/redis"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/config"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/eventpublisher"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/logger"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/metrics"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/postgres"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/infrastructure/redis"
	"github.com/farazahmedph003/GULL-2025-sub000/internal/usecase"
)

const migrationsPath = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	submitUC := usecase.NewSubmitUseCase(usecase.SubmitConfig{
		TxManager:   txManager,
		EntryRepo:   entryRepo,
		BalanceRepo: balanceRepo,
		OutboxRepo:  outboxRepo,
		AuditRepo:   auditRepo,
		IDGen:       idGen,
		Retrier:     retrier,
		Cache:       cache,
		Limits:      cfg.Limits(),
		Metrics:     appMetrics,
		Logger:      log,
	})
	historyUC := usecase.NewHistoryUseCase(submitUC, cfg.HistoryDepth, log)
	summaryUC := usecase.NewSummaryUseCase(entryRepo, cache, cfg.SummaryCacheTTL, log)
	filterUC := usecase.NewFilterUseCase(submitUC, entryRepo, log)
	balanceUC := usecase.NewBalanceUseCase(txManager, balanceRepo, entryRepo, outboxRepo, auditRepo, idGen, appMetrics, log)

	// Outbox publisher pushing committed events to Redis pub/sub.
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  redisRepo.NewPublisher(redisClient),
		Logger:     log,
		Metrics:    appMetrics,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && publisherCtx.Err() == nil {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Handlers
	entryHandler := handler.NewEntryHandler(submitUC, summaryUC, historyUC)
	summaryHandler := handler.NewSummaryHandler(summaryUC)
	filterHandler := handler.NewFilterHandler(filterUC, historyUC)
	historyHandler := handler.NewHistoryHandler(historyUC)
	balanceHandler := handler.NewBalanceHandler(balanceUC, auditRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:     entryHandler,
		SummaryHandler:   summaryHandler,
		FilterHandler:    filterHandler,
		HistoryHandler:   historyHandler,
		BalanceHandler:   balanceHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          appMetrics,
		Logger:           log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
