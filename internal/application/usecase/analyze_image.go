package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/dto"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/valueobject"
)

// AnalyzeImage is the use case for scoring a screenshot or photo of a job post.
type AnalyzeImage struct {
	extractor     port.TextExtractor
	text          *AnalyzeText
	maxImageBytes int64
}

// NewAnalyzeImage creates a new AnalyzeImage use case. A nil extractor makes
// every call fail with ErrOCRUnavailable.
func NewAnalyzeImage(extractor port.TextExtractor, text *AnalyzeText, maxImageBytes int64) *AnalyzeImage {
	return &AnalyzeImage{
		extractor:     extractor,
		text:          text,
		maxImageBytes: maxImageBytes,
	}
}

// Execute extracts the text of the image and scores it like AnalyzeText.
func (uc *AnalyzeImage) Execute(ctx context.Context, req dto.AnalyzeImageRequest) (dto.AssessmentResponse, error) {
	if err := uc.text.validate.Struct(req); err != nil {
		return dto.AssessmentResponse{}, translateValidation(err)
	}
	if len(req.Image) == 0 {
		return dto.AssessmentResponse{}, ErrMissingFile
	}
	if uc.maxImageBytes > 0 && int64(len(req.Image)) > uc.maxImageBytes {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: limit %d bytes", ErrFileTooLarge, uc.maxImageBytes)
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: got %q", ErrInvalidFileType, req.ContentType)
	}
	if uc.extractor == nil {
		return dto.AssessmentResponse{}, ErrOCRUnavailable
	}

	ctx, span := tracer.Start(ctx, "AnalyzeImage")
	defer span.End()

	text, err := uc.extractor.Extract(ctx, req.Image, req.ContentType)
	if err != nil {
		span.RecordError(err)
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %s: %v", ErrOCRFailed, req.Filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return dto.AssessmentResponse{}, ErrMissingText
	}

	return uc.text.assess(ctx, text, valueobject.SourceImage, req.PostID)
}
