package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blueleafbooks/storefront/internal/api"
	"github.com/blueleafbooks/storefront/internal/cart"
	"github.com/blueleafbooks/storefront/internal/config"
	"github.com/blueleafbooks/storefront/internal/event"
	handler "github.com/blueleafbooks/storefront/internal/handler/http"
	sessionredis "github.com/blueleafbooks/storefront/internal/session/redis"
	"github.com/blueleafbooks/storefront/internal/view"
	"github.com/blueleafbooks/storefront/pkg/health"
	"github.com/blueleafbooks/storefront/pkg/httpclient"
	"github.com/blueleafbooks/storefront/pkg/kafka"
	"github.com/blueleafbooks/storefront/pkg/tracing"
)

// App owns the process-level resources and the HTTP server.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	server   *http.Server
	redis    *redis.Client
	producer *kafka.Producer

	tracerShutdown func(context.Context) error
}

// New builds the application: connects Redis, wires the backend client, the
// cart service, the renderer, and the route tree.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	shutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.TracingEndpoint,
		SampleRate:   cfg.TracingSample,
		Enabled:      cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown

	a.redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.redis.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	store := sessionredis.NewStore(a.redis, cfg.SessionTTL)

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.BackendTimeout
	doer := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("backend"),
		logger,
	)
	backend := api.NewClient(cfg.BackendBaseURL, doer, logger)

	var events *event.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		events = event.NewPublisher(a.producer, cfg.KafkaTopic, logger)
	}

	cartSvc := cart.NewService(backend, backend, store, events, logger)

	renderer, err := view.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return a.redis.Ping(ctx).Err()
	})

	h := handler.NewHandler(backend, cartSvc, store, renderer, events, logger)
	sessions := handler.NewSessionMiddleware(store, cfg.SessionCookieSecure, logger)

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName:    cfg.ServiceName,
		RateLimitRPS:   int(cfg.RateLimitRPS),
		RateLimitBurst: cfg.RateLimitBurst,
	}, h, sessions, healthHandler, logger)

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return a, nil
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("storefront listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown", slog.String("error", err.Error()))
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka close", slog.String("error", err.Error()))
		}
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close", slog.String("error", err.Error()))
	}
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown", slog.String("error", err.Error()))
	}
	return nil
}
