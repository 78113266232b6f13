package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ramosdigital/contact-api/internal/config"
	"github.com/ramosdigital/contact-api/internal/logging"
	"github.com/ramosdigital/contact-api/internal/server"
	"github.com/ramosdigital/contact-api/internal/telemetry"
	"github.com/ramosdigital/contact-api/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Configure and get logger
	if err := logging.Configure(cfg.LogConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting contact API %s in %s mode", version.Info(), cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracing, err := telemetry.NewProvider(ctx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
	})
	if err != nil {
		logger.Error("Failed to initialize tracing: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Warn("Tracing shutdown: %v", err)
		}
	}()
	if tracing.Enabled() {
		logger.Info("Exporting traces to %s", cfg.OTLPEndpoint)
	}

	contactService, err := server.NewContactService(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to create contact service: %v", err)
		os.Exit(1)
	}

	redisClient := server.NewRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv := server.NewServer(cfg, logger, server.Dependencies{
		Contact: contactService,
		Redis:   redisClient,
	})

	if err := srv.Start(ctx); err != nil {
		logger.Error("Server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
