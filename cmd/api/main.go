package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/repository"
	"shareit/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, db, err := initStore(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	redisClient := initRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}
	limiter := initRateLimiter(redisClient, logger)

	bus := initEventBus(logger)
	services := api.Services{
		Users:    service.NewUserService(repo, logging.Component(logger, "users")),
		Items:    service.NewItemService(repo, bus, service.SystemClock{}, logging.Component(logger, "items")),
		Bookings: service.NewBookingService(repo, bus, service.SystemClock{}, logging.Component(logger, "bookings")),
		Requests: service.NewRequestService(repo, bus, service.SystemClock{}, logging.Component(logger, "requests")),
	}

	var health api.HealthChecker
	if db != nil {
		health = db
		if cfg.Backup.Enabled {
			go database.NewBackupService(db, cfg.Backup, logging.Component(logger, "backup")).Start(ctx)
		}
	}

	startMetrics(ctx, cfg, logger)

	httpServer := api.NewHTTPServer(cfg, services, limiter, health, logging.Component(logger, "http"))
	return serve(ctx, httpServer, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logging.Component(baseLogger, "api-main"), closer, nil
}

// initStore opens the configured repository. db is nil for the memory driver.
func initStore(cfg *config.Config, logger *zerolog.Logger) (domain.Repository, *database.DB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil, nil
	}

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, nil, err
	}
	return db, db, nil
}

func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	client := repository.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = client.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return client
}

func initRateLimiter(client *redis.Client, logger *zerolog.Logger) domain.RateLimiter {
	local := repository.NewMemoryRateLimiter()
	if client == nil {
		return local
	}
	return repository.NewFailoverRateLimiter(
		repository.NewRedisRateLimiter(client, "shareit"),
		local,
		logging.Component(logger, "rate-limiter"),
	)
}

func initEventBus(logger *zerolog.Logger) *events.EventBus {
	bus := events.NewEventBus()
	eventLogger := logging.Component(logger, "events")
	bus.SubscribeAll(func(event *events.Event) error {
		metrics.IncEvent(event.Type)
		eventLogger.Info().Str("type", event.Type).RawJSON("payload", event.Payload).Msg("event published")
		return nil
	})
	return bus
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
}

func serve(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
