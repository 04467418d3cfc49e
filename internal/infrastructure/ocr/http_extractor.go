package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/remote"
)

// Compile-time interface check.
var _ port.TextExtractor = (*HTTPExtractor)(nil)

// HTTPExtractor implements port.TextExtractor against an OCR service that
// accepts the raw image on POST /v1/extract and answers {"text": "..."}.
type HTTPExtractor struct {
	client *remote.Client
}

// NewHTTPExtractor creates a new OCR service client.
func NewHTTPExtractor(baseURL, apiKey string, timeout time.Duration) *HTTPExtractor {
	return &HTTPExtractor{
		client: remote.New(remote.Config{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Timeout:    timeout,
			MaxRetries: 2,
		}),
	}
}

type extractResponse struct {
	Text string `json:"text"`
}

// Extract returns the text found in image. Every failure wraps port.ErrOCRFailed.
func (e *HTTPExtractor) Extract(ctx context.Context, image []byte, contentType string) (string, error) {
	var resp extractResponse
	if err := e.client.Post(ctx, "/v1/extract", contentType, image, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", port.ErrOCRFailed, err)
	}
	return resp.Text, nil
}
