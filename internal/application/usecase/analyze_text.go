package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/dto"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/model"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/service"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/valueobject"
)

const instrumentationName = "github.com/dhxnujaK/Fraud-Alert-LK/internal/application/usecase"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)
)

// AnalyzeText is the use case for scoring the text of a job post.
type AnalyzeText struct {
	scorer       service.Scorer
	repo         port.AssessmentRepository
	publisher    port.EventPublisher
	validate     *validator.Validate
	logger       *slog.Logger
	assessed     metric.Int64Counter
	maxTextBytes int
}

// NewAnalyzeText creates a new AnalyzeText use case. repo may be nil, in
// which case assessments are not recorded. maxTextBytes <= 0 disables the
// size check.
func NewAnalyzeText(
	scorer service.Scorer,
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	maxTextBytes int,
	logger *slog.Logger,
) *AnalyzeText {
	assessed, err := meter.Int64Counter("fraudalert.assessments",
		metric.WithDescription("Job posts assessed, by risk band"),
	)
	if err != nil {
		logger.Warn("failed to create assessments counter", "error", err)
	}
	return &AnalyzeText{
		assessed:     assessed,
		scorer:       scorer,
		repo:         repo,
		publisher:    publisher,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       logger,
		maxTextBytes: maxTextBytes,
	}
}

// Execute validates the request, scores the text, records the assessment and
// publishes its events. Recording and publishing failures are logged and do
// not fail the call.
func (uc *AnalyzeText) Execute(ctx context.Context, req dto.AnalyzeTextRequest) (dto.AssessmentResponse, error) {
	if err := uc.validate.Struct(req); err != nil {
		return dto.AssessmentResponse{}, translateValidation(err)
	}
	source, err := valueobject.SourceFromString(req.Source)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return uc.assess(ctx, req.Text, source, req.PostID)
}

func (uc *AnalyzeText) assess(ctx context.Context, text string, source valueobject.Source, postID string) (dto.AssessmentResponse, error) {
	if uc.maxTextBytes > 0 && len(text) > uc.maxTextBytes {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %d bytes, limit %d", ErrTextTooLarge, len(text), uc.maxTextBytes)
	}

	ctx, span := tracer.Start(ctx, "AnalyzeText")
	defer span.End()

	result := uc.scorer.Score(ctx, text)

	assessment, err := model.NewJobPostAssessment(text, source, postID, result.Score, result.Keywords)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}
	assessment.AttachFeatures(service.ExtractFeatures(text))

	span.SetAttributes(
		attribute.String("assessment.id", assessment.ID().String()),
		attribute.Int("assessment.fraud_score", assessment.FraudScore()),
		attribute.String("assessment.risk_band", assessment.RiskBand().String()),
	)

	if uc.assessed != nil {
		uc.assessed.Add(ctx, 1, metric.WithAttributes(
			attribute.String("risk_band", assessment.RiskBand().String()),
			attribute.String("source", source.String()),
			attribute.Bool("fraudulent", assessment.IsFraudulent()),
		))
	}

	if uc.repo != nil {
		if err := uc.repo.Save(ctx, assessment); err != nil {
			uc.logger.WarnContext(ctx, "failed to record assessment",
				"assessment_id", assessment.ID(),
				"error", err,
			)
		}
	}

	if evts := assessment.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.WarnContext(ctx, "failed to publish assessment events",
				"assessment_id", assessment.ID(),
				"error", err,
			)
		}
	}

	uc.logger.InfoContext(ctx, "job post assessed",
		"assessment_id", assessment.ID(),
		"source", source.String(),
		"fraud_score", assessment.FraudScore(),
		"risk_band", assessment.RiskBand().String(),
		"keywords", len(assessment.SuspiciousKeywords()),
	)

	return dto.FromModel(assessment), nil
}

func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	for _, fe := range verrs {
		if fe.Field() == "Text" && fe.Tag() == "required" {
			return ErrMissingText
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequest, verrs)
}
