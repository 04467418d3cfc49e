// Package stream consumes job posts submitted for scanning from Kafka.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/dto"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/usecase"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/kafka"
)

// SubmittedPost is the payload of a job-posts.submitted message.
type SubmittedPost struct {
	PostID string `json:"postId"`
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// TextAnalyzer scores the text of a job post.
type TextAnalyzer interface {
	Execute(ctx context.Context, req dto.AnalyzeTextRequest) (dto.AssessmentResponse, error)
}

// ScanHandler runs every submitted post through the AnalyzeText use case.
type ScanHandler struct {
	analyzer TextAnalyzer
	logger   *slog.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(analyzer TextAnalyzer, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{analyzer: analyzer, logger: logger}
}

// Handle implements kafka.Handler. Messages that can never be scored are
// reported with kafka.ErrSkip.
func (h *ScanHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var post SubmittedPost
	if err := json.Unmarshal(msg.Value, &post); err != nil {
		return fmt.Errorf("%w: malformed payload: %v", kafka.ErrSkip, err)
	}

	resp, err := h.analyzer.Execute(ctx, dto.AnalyzeTextRequest{
		Text:   post.Text,
		PostID: post.PostID,
		Source: post.Source,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrMissingText) ||
			errors.Is(err, usecase.ErrTextTooLarge) ||
			errors.Is(err, usecase.ErrInvalidRequest) {
			return fmt.Errorf("%w: post %q: %v", kafka.ErrSkip, post.PostID, err)
		}
		return fmt.Errorf("scanning post %q: %w", post.PostID, err)
	}

	h.logger.InfoContext(ctx, "post scanned",
		"post_id", post.PostID,
		"assessment_id", resp.ID,
		"fraud_score", resp.FraudScore,
		"is_fraudulent", resp.IsFraudulent,
	)
	return nil
}
