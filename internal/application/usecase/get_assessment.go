package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/dto"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
)

// GetAssessment is the use case for retrieving a recorded assessment.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case. With a nil repo
// every lookup reports ErrAssessmentNotFound.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute retrieves an assessment by ID.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error) {
	if uc.repo == nil {
		return dto.AssessmentResponse{}, ErrAssessmentNotFound
	}

	assessment, err := uc.repo.FindByID(ctx, req.AssessmentID)
	if err != nil {
		if errors.Is(err, port.ErrAssessmentNotFound) {
			return dto.AssessmentResponse{}, fmt.Errorf("%w: %s", ErrAssessmentNotFound, req.AssessmentID)
		}
		return dto.AssessmentResponse{}, fmt.Errorf("failed to find assessment: %w", err)
	}

	return dto.FromModel(assessment), nil
}
