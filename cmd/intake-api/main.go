// Package main provides the CLI entry point for the intake API.
// It handles command-line flag parsing, service initialization, and HTTP server setup.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"cryptoalerts/internal/assets"
	"cryptoalerts/internal/config"
	"cryptoalerts/internal/handlers"
	"cryptoalerts/internal/metrics"
	"cryptoalerts/internal/producer"
	"cryptoalerts/internal/router"
)

func main() {
	// Parse command-line flags
	cfg := &config.IntakeConfig{}
	flag.StringVar(&cfg.HTTPPort, "http-port", "8080", "HTTP server port")
	flag.StringVar(&cfg.KafkaBrokers, "kafka-brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
	flag.StringVar(&cfg.AlertsTopic, "alerts-topic", "alerts.created", "Kafka topic for created alerts")
	flag.StringVar(&cfg.PriceAPIBaseURL, "price-api-base-url", "https://pro-api.coinmarketcap.com", "Price API base URL")
	flag.StringVar(&cfg.PriceAPIKey, "price-api-key", os.Getenv("PRICE_API_KEY"), "Price API key")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", os.Getenv("REDIS_ADDR"), "Redis address for metrics (optional)")
	flag.Parse()

	// Set up structured logging
	// Allow DEBUG level via environment variable for troubleshooting
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "DEBUG" || os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting intake-api",
		"http_port", cfg.HTTPPort,
		"kafka_brokers", cfg.KafkaBrokers,
		"alerts_topic", cfg.AlertsTopic,
		"price_api_base_url", cfg.PriceAPIBaseURL,
	)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Initialize Kafka producer
	slog.Info("Connecting to Kafka producer", "topic", cfg.AlertsTopic)
	kafkaProducer, err := producer.NewProducer(cfg.KafkaBrokers, cfg.AlertsTopic)
	if err != nil {
		slog.Error("Failed to create Kafka producer", "error", err)
		slog.Info("Tip: Start Kafka with 'docker compose up -d kafka'")
		os.Exit(1)
	}
	defer kafkaProducer.Close()
	slog.Info("Successfully connected to Kafka producer")

	// Initialize price API client
	priceClient := assets.NewClient(cfg.PriceAPIBaseURL, cfg.PriceAPIKey)

	// Optional metrics reporting to Redis
	var collector *metrics.Collector
	if cfg.RedisAddr != "" {
		redisClient, err := metrics.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			slog.Warn("Metrics disabled, Redis unreachable", "error", err)
		} else {
			defer redisClient.Close()
			collector = metrics.NewCollector("intake-api", redisClient)
			collector.Start(ctx)
			defer collector.Stop()
		}
	}

	// Initialize HTTP handlers
	h := handlers.NewHandlersWithMetrics(priceClient, kafkaProducer, handlers.NewMetricsAdapter(collector))

	// Create HTTP server with router
	server := router.NewServer(cfg.HTTPPort, h)

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		slog.Info("Shutting down HTTP server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error shutting down server", "error", err)
		}
		slog.Info("HTTP server stopped")
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
		os.Exit(1)
	}

	slog.Info("Intake-api stopped")
}
