package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/app"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/config"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/presentation/stream"
	pkgkafka "github.com/dhxnujaK/Fraud-Alert-LK/pkg/kafka"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("scanworker failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.ServiceName = "fraudalert-scanworker"

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Service:     cfg.ServiceName,
		Environment: cfg.Environment,
	})

	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.KafkaEnabled() {
		return errors.New("KAFKA_BROKERS is required for the scan worker")
	}

	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer meterProvider.Shutdown(context.Background())

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	handler := stream.NewScanHandler(application.AnalyzeText, logger)
	consumer, err := pkgkafka.NewConsumer(app.KafkaConfig(cfg), cfg.KafkaSubmittedTopic, handler.Handle, logger)
	if err != nil {
		return fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	defer consumer.Close()

	// Metrics only; the worker has no API.
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()

	logger.Info("scanworker started",
		"topic", cfg.KafkaSubmittedTopic,
		"group", cfg.KafkaGroup,
		"publish_topic", cfg.KafkaAssessmentTopic,
	)

	runErr := consumer.Start(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("scanworker stopped")
	return runErr
}
