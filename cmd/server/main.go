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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/budgetledger/internal/adapter/http"
	"github.com/iho/budgetledger/internal/adapter/http/handler"
	"github.com/iho/budgetledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/budgetledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/budgetledger/internal/adapter/repository/redis"
	"github.com/iho/budgetledger/internal/infrastructure/config"
	"github.com/iho/budgetledger/internal/infrastructure/eventpublisher"
	"github.com/iho/budgetledger/internal/infrastructure/logger"
	"github.com/iho/budgetledger/internal/infrastructure/metrics"
	"github.com/iho/budgetledger/internal/infrastructure/postgres"
	"github.com/iho/budgetledger/internal/infrastructure/redis"
	"github.com/iho/budgetledger/internal/usecase"
	"github.com/iho/budgetledger/internal/worker"
)

// limiterIdle is how long a client may stay silent before its rate limiter is dropped.
const limiterIdle = 10 * time.Minute

func main() {
	// Local development only; real deployments set the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Redis is optional
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("redis disabled: no account cache and no idempotency keys")
	}

	appMetrics := metrics.New(prometheus.DefaultRegisterer)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	payeeRepo := postgresRepo.NewPayeeRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	ruleRepo := postgresRepo.NewRecurringRuleRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Initialize use cases
	accountOpts := []usecase.AccountOption{
		usecase.WithAccountMetrics(appMetrics),
		usecase.WithAccountLogger(log),
	}
	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		cache := redisRepo.NewCache(redisClient).WithLookupHook(appMetrics.RecordCacheLookup)
		accountOpts = append(accountOpts, usecase.WithAccountCache(cache, cfg.AccountCacheTTL))
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
	}

	accountUC := usecase.NewAccountUseCase(accountRepo, idGen, accountOpts...)
	classificationUC := usecase.NewClassificationUseCase(payeeRepo, categoryRepo, idGen)
	transactionUC := usecase.NewTransactionUseCase(txManager, accountRepo, payeeRepo, categoryRepo, txRepo, outboxRepo, idGen, retrier,
		usecase.WithTransactionMetrics(appMetrics),
		usecase.WithTransactionLogger(log),
	)
	recurringUC := usecase.NewRecurringUseCase(txManager, ruleRepo, accountRepo, payeeRepo, categoryRepo, txRepo, outboxRepo, idGen, retrier,
		usecase.WithRecurringMetrics(appMetrics),
		usecase.WithRecurringLogger(log),
	)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	rateLimiter.OnLimit = appMetrics.RecordRateLimitHit

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC),
		ClassificationHandler: handler.NewClassificationHandler(classificationUC),
		TransactionHandler:    handler.NewTransactionHandler(transactionUC),
		RecurringHandler:      handler.NewRecurringHandler(recurringUC),
		CalendarHandler:       handler.NewCalendarHandler(nil, handler.WithCalendarAlerts(appMetrics, log)),
		LedgerHandler:         handler.NewLedgerHandler(ledgerUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		Logger:                log,
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
		RateLimiter:           rateLimiter,
		Metrics:               appMetrics,
		MetricsHandler:        promhttp.Handler(),
	})

	publisher, closePublisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		Metrics:    appMetrics,
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return ignoreCanceled(relay.Start(gctx))
	})

	if cfg.RecurringEnabled {
		recurring := worker.NewRecurringWorker(worker.RecurringConfig{
			Materializer: recurringUC,
			Interval:     cfg.RecurringInterval,
			Logger:       log,
		})
		g.Go(func() error {
			return ignoreCanceled(recurring.Start(gctx))
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(limiterIdle)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				rateLimiter.CleanupLimiters(limiterIdle)
			}
		}
	})

	return g.Wait()
}

// newPublisher returns the AMQP publisher when AMQP_URL is set and a log
// publisher otherwise. The returned func releases the broker connection.
func newPublisher(cfg *config.Config, log zerolog.Logger) (eventpublisher.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		log.Info().Msg("AMQP disabled: outbox events are logged")
		return eventpublisher.NewLogPublisher(log), func() {}, nil
	}

	p, err := eventpublisher.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to amqp: %w", err)
	}
	log.Info().Str("exchange", cfg.AMQPExchange).Msg("connected to amqp")

	return p, func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close amqp publisher")
		}
	}, nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
