package service

import "context"

// ScoreResult is the outcome of scoring a piece of text.
type ScoreResult struct {
	Score    int
	Keywords []string
}

// Scorer defines the interface for fraud scoring strategies.
// Both KeywordScorer (rule-based) and HybridScorer (rules + ML) implement this.
type Scorer interface {
	Score(ctx context.Context, text string) ScoreResult
}
