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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/app"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/config"
	grpcpresentation "github.com/dhxnujaK/Fraud-Alert-LK/internal/presentation/grpc"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/presentation/rest"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/presentation/rest/middleware"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/observability"
	pkgpostgres "github.com/dhxnujaK/Fraud-Alert-LK/pkg/postgres"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("fraudalertd failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Service:     cfg.ServiceName,
		Environment: cfg.Environment,
	})

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("starting fraudalertd",
		"version", version,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"environment", cfg.Environment,
	)

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

	jwtService, err := app.JWTService(cfg)
	if err != nil {
		return fmt.Errorf("failed to configure authentication: %w", err)
	}
	if jwtService == nil {
		logger.Warn("authentication disabled, JWT_SECRET and JWT_PUBLIC_KEY_FILE are unset")
	}

	checks := map[string]rest.ReadinessCheck{}
	if application.Repository != nil {
		repo := application.Repository
		checks["database"] = func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, repo) }
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		var global middleware.GlobalCounter
		if cfg.RedisAddr != "" && cfg.RedisGlobalLimit > 0 {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			defer rdb.Close()
			global = middleware.NewRedisCounter(rdb, int64(cfg.RedisGlobalLimit), time.Minute)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			logger.Info("global rate limit enabled", "redis", cfg.RedisAddr, "per_minute", cfg.RedisGlobalLimit)
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, global, logger)
	}

	router := rest.NewRouter(rest.RouterConfig{
		Fraud: rest.NewFraudHandler(
			application.AnalyzeText,
			application.AnalyzeImage,
			application.GetAssessment,
			cfg.MaxUploadBytes,
			logger,
		),
		Health:      rest.NewHealthHandler(cfg.ServiceName, version, checks, logger),
		Metrics:     metricsHandler,
		HTTPMetrics: middleware.NewMetrics(prometheus.DefaultRegisterer),
		RateLimiter: limiter,
		JWT:         jwtService,
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	grpcHandler := grpcpresentation.NewFraudDetectionHandler(application.AnalyzeText, application.GetAssessment, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		JWT:         jwtService,
		TLSCertFile: cfg.GRPCTLSCertFile,
		TLSKeyFile:  cfg.GRPCTLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server error", "error", runErr)
	}

	logger.Info("shutting down fraudalertd")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("fraudalertd stopped")
	return runErr
}
