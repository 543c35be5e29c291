package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpAdapter "github.com/arav/divvy/internal/adapter/http"
	"github.com/arav/divvy/internal/adapter/http/handler"
	"github.com/arav/divvy/internal/adapter/http/middleware"
	postgresRepo "github.com/arav/divvy/internal/adapter/repository/postgres"
	redisRepo "github.com/arav/divvy/internal/adapter/repository/redis"
	"github.com/arav/divvy/internal/infrastructure/config"
	"github.com/arav/divvy/internal/infrastructure/eventpublisher"
	"github.com/arav/divvy/internal/infrastructure/logger"
	"github.com/arav/divvy/internal/infrastructure/metrics"
	"github.com/arav/divvy/internal/infrastructure/postgres"
	"github.com/arav/divvy/internal/infrastructure/redis"
	"github.com/arav/divvy/internal/usecase"
)

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

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	groupRepo := postgresRepo.NewGroupRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	settlementRepo := postgresRepo.NewSettlementRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	groupUC := usecase.NewGroupUseCase(groupRepo, userRepo, idGen)
	balanceUC := usecase.NewBalanceUseCase(expenseRepo, cache, m)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, groupRepo, balanceUC, idGen, m)
	recurringUC := usecase.NewRecurringUseCase(txManager, expenseRepo, outboxRepo, balanceUC, idGen, m)
	settlementUC := usecase.NewSettlementUseCase(txManager, expenseRepo, settlementRepo, outboxRepo, idGen, m)
	paymentUC := usecase.NewPaymentUseCase(txManager, transactionRepo, outboxRepo, retrier, idGen, m)
	metricsUC := usecase.NewMetricsUseCase(expenseRepo)
	graphUC := usecase.NewGraphUseCase(groupRepo, userRepo, balanceUC)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUC)
	groupHandler := handler.NewGroupHandler(groupUC)
	expenseHandler := handler.NewExpenseHandler(expenseUC, recurringUC)
	balanceHandler := handler.NewBalanceHandler(balanceUC, metricsUC, graphUC)
	settlementHandler := handler.NewSettlementHandler(settlementUC)
	transactionHandler := handler.NewTransactionHandler(paymentUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:        userHandler,
		GroupHandler:       groupHandler,
		ExpenseHandler:     expenseHandler,
		BalanceHandler:     balanceHandler,
		SettlementHandler:  settlementHandler,
		TransactionHandler: transactionHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        middleware.NewRateLimiter(100, 200),
		Logger:             log,
	})

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	if cfg.OutboxEnabled {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  eventpublisher.NewRedisPublisher(redisClient, cfg.OutboxChannel),
			Logger:     log,
			Metrics:    m,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxPollInterval,
		})
		go func() {
			if err := publisher.Start(workerCtx); err != nil && err != context.Canceled {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
		log.Info().Str("channel", cfg.OutboxChannel).Msg("outbox publisher started")
	}

	if cfg.RecurringEnabled {
		go runRecurringProcessor(workerCtx, recurringUC, cfg.RecurringPollInterval, log)
		log.Info().Dur("interval", cfg.RecurringPollInterval).Msg("recurring processor started")
	}

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
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// runRecurringProcessor materializes due recurring expenses on a fixed tick
// until ctx is cancelled.
func runRecurringProcessor(ctx context.Context, uc *usecase.RecurringUseCase, interval time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			created, err := uc.ProcessDue(ctx, now)
			if err != nil {
				log.Error().Err(err).Msg("recurring processing failed")
				continue
			}
			if len(created) > 0 {
				log.Info().Int("count", len(created)).Msg("materialized recurring expenses")
			}
		}
	}
}
