package service

import (
	"fmt"
	"strings"
)

// FraudPattern is a suspicious phrase and the score it contributes when found.
type FraudPattern struct {
	Keyword string
	Weight  int
}

// PatternTable is an ordered, read-only set of fraud patterns. Keywords are
// lower-case and unique.
type PatternTable struct {
	patterns []FraudPattern
}

// NewPatternTable validates and copies patterns into a table, keeping their order.
func NewPatternTable(patterns ...FraudPattern) (*PatternTable, error) {
	seen := make(map[string]struct{}, len(patterns))
	out := make([]FraudPattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Keyword == "" {
			return nil, fmt.Errorf("pattern keyword is required")
		}
		if p.Keyword != strings.ToLower(p.Keyword) {
			return nil, fmt.Errorf("pattern keyword %q must be lower-case", p.Keyword)
		}
		if _, dup := seen[p.Keyword]; dup {
			return nil, fmt.Errorf("duplicate pattern keyword %q", p.Keyword)
		}
		seen[p.Keyword] = struct{}{}
		out = append(out, p)
	}
	return &PatternTable{patterns: out}, nil
}

// DefaultPatternTable returns the built-in table of job-scam phrases.
func DefaultPatternTable() *PatternTable {
	t, err := NewPatternTable(
		FraudPattern{"registration fee", 35},
		FraudPattern{"processing fee", 30},
		FraudPattern{"security deposit", 25},
		FraudPattern{"training fee", 25},
		FraudPattern{"joining fee", 30},
		FraudPattern{"guaranteed income", 30},
		FraudPattern{"easy money", 25},
		FraudPattern{"quick money", 25},
		FraudPattern{"work from home", 15},
		FraudPattern{"no experience", 10},
		FraudPattern{"urgent hiring", 20},
		FraudPattern{"immediate joining", 20},
		FraudPattern{"whatsapp only", 30},
		FraudPattern{"limited seats", 25},
		FraudPattern{"cash payment", 25},
		FraudPattern{"advance payment", 35},
		FraudPattern{"deposit required", 30},
		FraudPattern{"copy paste", 35},
		FraudPattern{"data entry", 15},
		FraudPattern{"earn daily", 25},
		FraudPattern{"refundable", 20},
		FraudPattern{"investment required", 35},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Patterns returns a copy of the table in order.
func (t *PatternTable) Patterns() []FraudPattern {
	out := make([]FraudPattern, len(t.patterns))
	copy(out, t.patterns)
	return out
}

// Len returns the number of patterns.
func (t *PatternTable) Len() int {
	return len(t.patterns)
}
