package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
)

// MLEnhancedTag is appended to the keywords when the ML model contributed.
const MLEnhancedTag = "ml_enhanced"

// HybridScorer combines keyword scoring with an external text model.
// If the model fails, it falls back to keyword scoring.
type HybridScorer struct {
	rules    Scorer
	ml       port.MLModelClient
	mlWeight float64
	logger   *slog.Logger
}

// NewHybridScorer creates a HybridScorer with the given ML weight (0.0–1.0).
// A weight of 0.0 means rules-only; 1.0 means ML-only.
func NewHybridScorer(rules Scorer, ml port.MLModelClient, mlWeight float64, logger *slog.Logger) *HybridScorer {
	return &HybridScorer{
		rules:    rules,
		ml:       ml,
		mlWeight: math.Min(math.Max(mlWeight, 0), 1),
		logger:   logger,
	}
}

// Score evaluates text with both scorers and blends the results.
func (h *HybridScorer) Score(ctx context.Context, text string) ScoreResult {
	rules := h.rules.Score(ctx, text)
	if h.mlWeight == 0 {
		return rules
	}

	prediction, err := h.ml.Predict(ctx, text)
	if err != nil {
		h.logger.WarnContext(ctx, "ml prediction failed, using keyword scoring", "error", err)
		return rules
	}

	mlScore := prediction.Probability * 100
	combined := int(math.Round(float64(rules.Score)*(1-h.mlWeight) + mlScore*h.mlWeight))

	keywords := make([]string, len(rules.Keywords), len(rules.Keywords)+1)
	copy(keywords, rules.Keywords)
	keywords = append(keywords, MLEnhancedTag)

	return ScoreResult{Score: Clamp(combined), Keywords: keywords}
}
