package service

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// UnrealisticSalaryTag is appended to the keywords when the salary heuristic fires.
	UnrealisticSalaryTag = "unrealistic salary"

	minScore = 0
	maxScore = 100
)

// KeywordScorer scores job post text against a PatternTable and a fixed set
// of heuristics. It holds no mutable state and is safe for concurrent use.
type KeywordScorer struct {
	table *PatternTable
}

// NewKeywordScorer creates a KeywordScorer over table.
func NewKeywordScorer(table *PatternTable) *KeywordScorer {
	return &KeywordScorer{table: table}
}

// Score evaluates text. Matching is case-insensitive substring search, so
// "Registration Fee" inside "registration fees" still matches.
func (s *KeywordScorer) Score(_ context.Context, text string) ScoreResult {
	lower := cases.Lower(language.Und).String(text)
	score := 0
	keywords := make([]string, 0)

	for _, p := range s.table.patterns {
		if strings.Contains(lower, p.Keyword) {
			keywords = append(keywords, p.Keyword)
			score += p.Weight
		}
	}

	// Rule: local mobile number.
	if containsAny(lower, "+94 7", "077", "071") {
		score += 10
	}

	// Rule: unrealistic salary for no experience. Only these two literal
	// amounts are recognised.
	if containsAny(lower, "50,000", "1000 daily") && strings.Contains(lower, "no experience") {
		score += 25
		keywords = append(keywords, UnrealisticSalaryTag)
	}

	// Rule: urgency.
	if containsAny(lower, "urgent", "immediate", "limited time") {
		score += 15
	}

	// Rule: names an established employer.
	if containsAny(lower, "company", "pvt ltd", "office") {
		score -= 10
	}

	// Rule: states real requirements.
	if containsAny(lower, "experience required", "skills:") {
		score -= 15
	}

	// Rule: gives a formal contact channel.
	if containsAny(lower, "email:", "careers@") {
		score -= 20
	}

	return ScoreResult{Score: Clamp(score), Keywords: keywords}
}

// Clamp bounds a raw score to [0, 100].
func Clamp(score int) int {
	return min(max(score, minScore), maxScore)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
