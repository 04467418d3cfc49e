package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/model"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/valueobject"
)

// AnalyzeTextRequest is the input DTO for the AnalyzeText use case.
type AnalyzeTextRequest struct {
	Text   string `json:"text" validate:"required"`
	PostID string `json:"postId,omitempty" validate:"max=128"`
	Source string `json:"source,omitempty" validate:"omitempty,oneof=TEXT IMAGE"`
}

// AnalyzeImageRequest is the input DTO for the AnalyzeImage use case.
type AnalyzeImageRequest struct {
	Image       []byte
	ContentType string
	Filename    string
	PostID      string `validate:"max=128"`
}

// GetAssessmentRequest is the input DTO for retrieving an assessment.
type GetAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessmentId"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	Timestamp          time.Time                 `json:"timestamp"`
	Features           *valueobject.TextFeatures `json:"features,omitempty"`
	ExtractedText      string                    `json:"extractedText"`
	RiskLevel          string                    `json:"riskLevel"`
	RiskColor          string                    `json:"riskColor"`
	Source             string                    `json:"source"`
	PostID             string                    `json:"postId,omitempty"`
	SuspiciousKeywords []string                  `json:"suspiciousKeywords"`
	FraudScore         int                       `json:"fraudScore"`
	IsFraudulent       bool                      `json:"isFraudulent"`
	ID                 uuid.UUID                 `json:"id"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.JobPostAssessment) AssessmentResponse {
	keywords := a.SuspiciousKeywords()
	if keywords == nil {
		keywords = []string{}
	}
	return AssessmentResponse{
		ID:                 a.ID(),
		ExtractedText:      a.ExtractedText(),
		FraudScore:         a.FraudScore(),
		IsFraudulent:       a.IsFraudulent(),
		SuspiciousKeywords: keywords,
		Timestamp:          a.Timestamp(),
		RiskLevel:          a.RiskBand().String(),
		RiskColor:          a.RiskBand().Color(),
		Source:             a.Source().String(),
		PostID:             a.PostID(),
		Features:           a.Features(),
	}
}
