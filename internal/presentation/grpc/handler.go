package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/dto"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/usecase"
)

// Compile-time assertion that FraudDetectionHandler implements FraudDetectionServiceServer.
var _ FraudDetectionServiceServer = (*FraudDetectionHandler)(nil)

// FraudDetectionHandler implements the gRPC FraudDetectionServiceServer interface.
type FraudDetectionHandler struct {
	UnimplementedFraudDetectionServiceServer
	analyzeText   *usecase.AnalyzeText
	getAssessment *usecase.GetAssessment
	logger        *slog.Logger
}

// NewFraudDetectionHandler creates a new gRPC handler.
func NewFraudDetectionHandler(
	analyzeText *usecase.AnalyzeText,
	getAssessment *usecase.GetAssessment,
	logger *slog.Logger,
) *FraudDetectionHandler {
	return &FraudDetectionHandler{
		analyzeText:   analyzeText,
		getAssessment: getAssessment,
		logger:        logger,
	}
}

// AnalyzeTextRequest is the AnalyzeText request message.
type AnalyzeTextRequest struct {
	Text   string `json:"text"`
	PostID string `json:"post_id,omitempty"`
	Source string `json:"source,omitempty"`
}

// AssessmentMsg is the Assessment message.
type AssessmentMsg struct {
	ID                 string   `json:"id"`
	PostID             string   `json:"post_id,omitempty"`
	Source             string   `json:"source"`
	ExtractedText      string   `json:"extracted_text"`
	FraudScore         int32    `json:"fraud_score"`
	IsFraudulent       bool     `json:"is_fraudulent"`
	RiskLevel          string   `json:"risk_level"`
	RiskColor          string   `json:"risk_color"`
	SuspiciousKeywords []string `json:"suspicious_keywords"`
	Timestamp          string   `json:"timestamp"`
}

// AnalyzeTextResponse is the AnalyzeText response message.
type AnalyzeTextResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
	Reasoning  string         `json:"reasoning"`
}

// GetAssessmentRequest is the GetAssessment request message.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse is the GetAssessment response message.
type GetAssessmentResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// AnalyzeText scores the text of a job post.
func (h *FraudDetectionHandler) AnalyzeText(ctx context.Context, req *AnalyzeTextRequest) (*AnalyzeTextResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.analyzeText.Execute(ctx, dto.AnalyzeTextRequest{
		Text:   req.Text,
		PostID: req.PostID,
		Source: req.Source,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to analyze text", err)
	}

	return &AnalyzeTextResponse{
		Assessment: toAssessmentMsg(result),
		Reasoning:  "Analysis complete. Risk level: " + result.RiskLevel,
	}, nil
}

// GetAssessment returns a recorded assessment.
func (h *FraudDetectionHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	assessmentID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: assessmentID})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to get assessment", err)
	}

	return &GetAssessmentResponse{Assessment: toAssessmentMsg(result)}, nil
}

func (h *FraudDetectionHandler) toStatus(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, usecase.ErrMissingText),
		errors.Is(err, usecase.ErrTextTooLarge),
		errors.Is(err, usecase.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, usecase.ErrOCRUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	}
	h.logger.ErrorContext(ctx, msg, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func toAssessmentMsg(r dto.AssessmentResponse) *AssessmentMsg {
	return &AssessmentMsg{
		ID:                 r.ID.String(),
		PostID:             r.PostID,
		Source:             r.Source,
		ExtractedText:      r.ExtractedText,
		FraudScore:         int32(r.FraudScore),
		IsFraudulent:       r.IsFraudulent,
		RiskLevel:          r.RiskLevel,
		RiskColor:          r.RiskColor,
		SuspiciousKeywords: r.SuspiciousKeywords,
		Timestamp:          r.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
