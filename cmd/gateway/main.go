package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/internal/config"
	"shareit/internal/gateway"
	"shareit/internal/logging"
	"shareit/internal/worker"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}
	logger := logging.Component(baseLogger, "gateway")

	retry := worker.RetryPolicy{
		MaxRetries:    cfg.Gateway.Retry.MaxRetries,
		InitialDelay:  cfg.Gateway.Retry.InitialDelay,
		MaxDelay:      cfg.Gateway.Retry.MaxDelay,
		BackoffFactor: cfg.Gateway.Retry.BackoffFactor,
	}
	client := gateway.NewServerClient(cfg.Gateway.ServerURL, cfg.Gateway.Timeout, retry, logging.Component(baseLogger, "gateway-client"))
	gw := gateway.New(cfg, client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- gw.Start()
	}()
	logger.Info().Str("server_url", cfg.Gateway.ServerURL).Msg("gateway started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := gw.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("gateway shutdown")
	}
	logger.Info().Msg("gateway stopped")
	return nil
}
