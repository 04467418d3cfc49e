// Package app assembles the components shared by fraudalertd and scanworker
// from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/usecase"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/service"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/config"
	infrakafka "github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/kafka"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/messaging"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/ml"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/ocr"
	infrapg "github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/postgres"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/auth"
	pkgkafka "github.com/dhxnujaK/Fraud-Alert-LK/pkg/kafka"
	pkgpostgres "github.com/dhxnujaK/Fraud-Alert-LK/pkg/postgres"
)

// App holds the wired use cases and the resources they depend on.
type App struct {
	AnalyzeText   *usecase.AnalyzeText
	AnalyzeImage  *usecase.AnalyzeImage
	GetAssessment *usecase.GetAssessment

	// Repository is nil when the audit trail is disabled.
	Repository *infrapg.AssessmentRepository

	closers []func() error
}

// New wires the application. Optional collaborators (PostgreSQL, Kafka, OCR,
// ML model) are enabled by their configuration.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}

	var repo port.AssessmentRepository
	if cfg.AuditEnabled() {
		r, err := a.openRepository(ctx, cfg, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Repository = r
		repo = r
	} else {
		logger.Info("audit trail disabled, assessments are not recorded")
	}

	publisher, err := a.newPublisher(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.AnalyzeText = usecase.NewAnalyzeText(newScorer(cfg, logger), repo, publisher, cfg.MaxTextBytes, logger)

	var extractor port.TextExtractor
	if cfg.OCRServiceURL != "" {
		extractor = ocr.NewHTTPExtractor(cfg.OCRServiceURL, cfg.OCRAPIKey, cfg.OCRTimeout)
	} else {
		logger.Info("OCR service not configured, image analysis disabled")
	}
	a.AnalyzeImage = usecase.NewAnalyzeImage(extractor, a.AnalyzeText, cfg.MaxUploadBytes)
	a.GetAssessment = usecase.NewGetAssessment(repo)

	return a, nil
}

func (a *App) openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*infrapg.AssessmentRepository, error) {
	if err := pkgpostgres.RunMigrations(infrapg.Migrations, infrapg.MigrationsDir, cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{DSN: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.closers = append(a.closers, func() error { pool.Close(); return nil })

	logger.Info("connected to database, audit trail enabled")
	return infrapg.NewAssessmentRepository(pool), nil
}

func (a *App) newPublisher(cfg *config.Config, logger *slog.Logger) (port.EventPublisher, error) {
	if !cfg.KafkaEnabled() {
		logger.Info("kafka not configured, logging domain events")
		return messaging.NewLogPublisher(logger), nil
	}
	producer, err := pkgkafka.NewProducer(KafkaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	a.closers = append(a.closers, producer.Close)
	logger.Info("publishing domain events to kafka", "topic", cfg.KafkaAssessmentTopic)
	return infrakafka.NewPublisher(producer, cfg.KafkaAssessmentTopic, logger), nil
}

func newScorer(cfg *config.Config, logger *slog.Logger) service.Scorer {
	rules := service.NewKeywordScorer(service.DefaultPatternTable())
	if cfg.MLModelURL == "" {
		return rules
	}
	logger.Info("ml model blending enabled", "url", cfg.MLModelURL, "weight", cfg.MLWeight)
	return service.NewHybridScorer(rules, ml.NewHTTPModelClient(cfg.MLModelURL, cfg.MLTimeout), cfg.MLWeight, logger)
}

// KafkaConfig maps the service configuration onto the Kafka client configuration.
func KafkaConfig(cfg *config.Config) pkgkafka.Config {
	return pkgkafka.Config{
		Brokers:       cfg.KafkaBrokers,
		ConsumerGroup: cfg.KafkaGroup,
		TLS:           cfg.KafkaTLS,
		SASLEnabled:   cfg.KafkaSASLMechanism != "",
		SASLMechanism: cfg.KafkaSASLMechanism,
		SASLUsername:  cfg.KafkaSASLUsername,
		SASLPassword:  cfg.KafkaSASLPassword,
	}
}

// JWTService builds the token validator, or returns nil when authentication
// is not configured.
func JWTService(cfg *config.Config) (*auth.JWTService, error) {
	if !cfg.AuthEnabled() {
		return nil, nil
	}
	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: time.Hour,
	}
	if cfg.JWTPublicKeyFile != "" {
		pem, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(pem)
	}
	return auth.NewJWTService(jwtCfg)
}

// Close releases the database pool and the Kafka producer.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
