package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JKS-sys/shoppyglobe-storefront/internal/catalog"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/config"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/event"
	handler "github.com/JKS-sys/shoppyglobe-storefront/internal/handler/http"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/repository"
	memoryrepo "github.com/JKS-sys/shoppyglobe-storefront/internal/repository/memory"
	redisrepo "github.com/JKS-sys/shoppyglobe-storefront/internal/repository/redis"
	"github.com/JKS-sys/shoppyglobe-storefront/internal/service"
	"github.com/JKS-sys/shoppyglobe-storefront/pkg/health"
	"github.com/JKS-sys/shoppyglobe-storefront/pkg/httpclient"
	pkgkafka "github.com/JKS-sys/shoppyglobe-storefront/pkg/kafka"
	"github.com/JKS-sys/shoppyglobe-storefront/pkg/tracing"
)

// ServiceName identifies the storefront in logs, metrics and traces.
const ServiceName = "shoppyglobe-storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing.
	tracingCfg := tracing.DefaultConfig(ServiceName)
	tracingCfg.Enabled = cfg.TracingEnabled
	tracingCfg.OTLPEndpoint = cfg.TracingEndpoint
	tracingCfg.SampleRate = cfg.TracingSampleRate
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	healthHandler := health.NewHandler()

	// Cart storage backend.
	cartTTL := time.Duration(cfg.CartTTL) * time.Hour
	var repo repository.CartRepository
	var rdb *redis.Client
	switch cfg.CartBackend {
	case config.BackendRedis:
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		repo = redisrepo.NewCartRepository(rdb, cartTTL)
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	default:
		repo = memoryrepo.NewCartRepository(cartTTL)
		logger.Info("using in-memory cart storage")
	}

	// Kafka producer (optional).
	var producer *pkgkafka.Producer
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaBrokers[0] != "" {
		kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		producer = pkgkafka.NewProducer(kafkaCfg, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("kafka publishing disabled")
	}

	// Upstream product catalog client behind a circuit breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = time.Duration(cfg.CatalogTimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.CatalogMaxRetries
	cbClient := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("catalog"),
		logger,
	)
	fetcher := catalog.NewClient(cfg.CatalogBaseURL, cbClient, logger)

	// Build the dependency graph.
	eventProducer := event.NewProducer(producer, logger)
	cartService := service.NewCartService(repo, fetcher, eventProducer, logger)
	catalogService := service.NewCatalogService(fetcher, repo, logger)
	checkoutService := service.NewCheckoutService(repo, eventProducer, logger)

	// HTTP router.
	router := handler.NewRouter(
		handler.RouterConfig{
			ServiceName:    ServiceName,
			Environment:    cfg.Environment,
			AllowedOrigins: cfg.AllowedOrigins,
			PprofCIDRs:     cfg.PprofCIDRs,
		},
		cartService,
		catalogService,
		checkoutService,
		healthHandler,
		logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

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

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
