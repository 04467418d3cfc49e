package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/infrastructure/remote"
)

// Compile-time interface check.
var _ port.MLModelClient = (*HTTPModelClient)(nil)

// HTTPModelClient implements port.MLModelClient against a model server that
// answers POST /predict {"text": ...} with {"prediction": 0|1, "probability": p}.
type HTTPModelClient struct {
	client *remote.Client
}

// NewHTTPModelClient creates a model client. Scoring waits on the model, so
// it retries once and relies on a short timeout.
func NewHTTPModelClient(baseURL string, timeout time.Duration) *HTTPModelClient {
	return &HTTPModelClient{
		client: remote.New(remote.Config{
			BaseURL:    baseURL,
			Timeout:    timeout,
			MaxRetries: 1,
		}),
	}
}

type predictRequest struct {
	Text string `json:"text"`
}

// Predict asks the model for the probability that text is a scam.
func (c *HTTPModelClient) Predict(ctx context.Context, text string) (port.MLPrediction, error) {
	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return port.MLPrediction{}, fmt.Errorf("failed to encode request: %w", err)
	}

	var out port.MLPrediction
	if err := c.client.Post(ctx, "/predict", "application/json", body, &out); err != nil {
		return port.MLPrediction{}, fmt.Errorf("ml model request failed: %w", err)
	}
	if out.Probability < 0 || out.Probability > 1 {
		return port.MLPrediction{}, fmt.Errorf("ml model returned probability %v outside [0,1]", out.Probability)
	}
	return out, nil
}
