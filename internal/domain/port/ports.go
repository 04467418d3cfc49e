package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/model"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/events"
)

var (
	// ErrAssessmentNotFound is returned by AssessmentRepository lookups.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrOCRFailed is returned by a TextExtractor that could not read the image.
	ErrOCRFailed = errors.New("ocr failed")
)

// AssessmentRepository defines the audit store for job post assessments.
type AssessmentRepository interface {
	// Save records an assessment.
	Save(ctx context.Context, assessment *model.JobPostAssessment) error

	// FindByID retrieves an assessment by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.JobPostAssessment, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

// TextExtractor reads the text of a job post out of an image.
type TextExtractor interface {
	Extract(ctx context.Context, image []byte, contentType string) (string, error)
}

// MLPrediction is the answer of an external fraud text model.
type MLPrediction struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
}

// MLModelClient defines the port for an external text classification model.
type MLModelClient interface {
	Predict(ctx context.Context, text string) (MLPrediction, error)
}
