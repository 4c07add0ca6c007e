package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/catalog-engine/internal/cache"
	"github.com/utafrali/catalog-engine/internal/catalog"
	catalogmemory "github.com/utafrali/catalog-engine/internal/catalog/memory"
	catalogpostgres "github.com/utafrali/catalog-engine/internal/catalog/postgres"
	"github.com/utafrali/catalog-engine/internal/config"
	"github.com/utafrali/catalog-engine/internal/engine"
	"github.com/utafrali/catalog-engine/internal/event"
	handler "github.com/utafrali/catalog-engine/internal/handler/http"
	"github.com/utafrali/catalog-engine/pkg/database"
	"github.com/utafrali/catalog-engine/pkg/health"
	pkgkafka "github.com/utafrali/catalog-engine/pkg/kafka"
	"github.com/utafrali/catalog-engine/pkg/tracing"
)

// App wires together all dependencies and runs the catalog engine.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	pool        *pgxpool.Pool
	redisClient *redis.Client
	producer    *pkgkafka.Producer
	consumers   []*pkgkafka.Consumer

	engine          *engine.Engine
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Tracing.
	tracingShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "catalog-engine",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.tracingShutdown = tracingShutdown

	healthHandler := health.NewHandler()

	// Catalog backend.
	var reader catalog.Reader
	switch cfg.CatalogBackend {
	case "memory":
		reader = catalogmemory.New()
		logger.Info("using in-memory catalog backend")
	default:
		pgCfg := database.PostgresConfig{
			Host:            cfg.PostgresHost,
			Port:            cfg.PostgresPort,
			User:            cfg.PostgresUser,
			Password:        cfg.PostgresPass,
			DBName:          cfg.PostgresDB,
			SSLMode:         cfg.PostgresSSL,
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
			MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
		}
		pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.pool = pool
		reader = catalogpostgres.NewCatalogReader(pool)
		logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)
		healthHandler.Register("postgres", func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
	}

	// Engine options.
	var engineOpts []engine.Option

	if cfg.RedisEnabled {
		redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.redisClient = redisClient
		engineOpts = append(engineOpts, engine.WithCache(cache.NewRedis(redisClient, logger)))
		logger.Info("connected to Redis", slog.String("addr", fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)))

		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	} else {
		engineOpts = append(engineOpts, engine.WithCache(cache.NewMemory()))
	}

	if cfg.KafkaEnabled {
		kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		a.producer = pkgkafka.NewProducer(kafkaCfg, logger)
		engineOpts = append(engineOpts, engine.WithInteractionPublisher(event.NewInteractionProducer(a.producer)))
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

		healthHandler.Register("kafka", func(ctx context.Context) error {
			return a.producer.Ping(ctx)
		})
	}

	a.engine = engine.New(reader, logger, engineOpts...)

	if cfg.KafkaEnabled {
		rebuildHandler := event.NewProductChangeHandler(a.engine, logger)
		for _, topic := range []string{event.ProductCreatedTopic, event.ProductUpdatedTopic, event.ProductDeletedTopic} {
			a.consumers = append(a.consumers, pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
				Brokers: cfg.KafkaBrokers,
				GroupID: cfg.KafkaGroupID,
				Topic:   topic,
			}, rebuildHandler, logger))
		}
	}

	router := handler.NewRouter(a.engine, healthHandler, logger)
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// Run starts the HTTP server, kafka consumers, and the initial index build.
// It blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	// Initial index build happens in the background so startup is not gated
	// on catalog size; queries served before it completes fall back to
	// catalog-backed lookups.
	go func() {
		if err := a.engine.Rebuild(ctx); err != nil {
			a.logger.Error("initial index build failed", slog.String("error", err.Error()))
		}
	}()

	for _, consumer := range a.consumers {
		c := consumer
		go func() {
			if err := c.Start(ctx); err != nil {
				a.logger.Error("kafka consumer stopped", slog.String("error", err.Error()))
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	for _, consumer := range a.consumers {
		if err := consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
