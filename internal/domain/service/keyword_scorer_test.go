package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/service"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/valueobject"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/testutil"
)

func newScorer() *service.KeywordScorer {
	return service.NewKeywordScorer(service.DefaultPatternTable())
}

func TestKeywordScorer_ScamPost(t *testing.T) {
	result := newScorer().Score(context.Background(), testutil.ScamPostText)

	assert.Equal(t, 95, result.Score)
	assert.True(t, valueobject.IsFraudulentScore(result.Score))
	assert.True(t, valueobject.RiskBandCritical.Equal(valueobject.RiskBandFromScore(result.Score)))
	assert.Equal(t, []string{"registration fee", "guaranteed income", "whatsapp only"}, result.Keywords)
}

func TestKeywordScorer_LegitPost(t *testing.T) {
	result := newScorer().Score(context.Background(), testutil.LegitPostText)

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Keywords)
	assert.False(t, valueobject.IsFraudulentScore(result.Score))
	assert.True(t, valueobject.RiskBandMinimal.Equal(valueobject.RiskBandFromScore(result.Score)))
}

func TestKeywordScorer_SingleHeavyKeyword(t *testing.T) {
	table, err := service.NewPatternTable(service.FraudPattern{Keyword: "pay to apply", Weight: 50})
	require.NoError(t, err)

	result := service.NewKeywordScorer(table).Score(context.Background(), "Great role, but you must pay to apply.")

	assert.Equal(t, 50, result.Score)
	assert.False(t, valueobject.IsFraudulentScore(result.Score))
	assert.True(t, valueobject.RiskBandMedium.Equal(valueobject.RiskBandFromScore(result.Score)))
	assert.Equal(t, []string{"pay to apply"}, result.Keywords)
}

func TestKeywordScorer_LocalScamClampsTo100(t *testing.T) {
	result := newScorer().Score(context.Background(), testutil.LocalScamPostText)

	assert.Equal(t, 100, result.Score)
	assert.Equal(t, []string{
		"work from home",
		"no experience",
		"urgent hiring",
		"whatsapp only",
		"copy paste",
		"data entry",
		"unrealistic salary",
	}, result.Keywords)
}

func TestKeywordScorer_Heuristics(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		score    int
		keywords []string
	}{
		{"mobile prefix +94 7", "call +94 71 555 5555", 10, []string{}},
		{"mobile prefix 077", "call 0771234567", 10, []string{}},
		{"urgency", "Limited time offer", 15, []string{}},
		{"urgent also matches immediate", "immediate start", 15, []string{}},
		{
			name:     "salary with no experience",
			text:     "Rs. 50,000 salary, no experience",
			score:    10 + 25,
			keywords: []string{"no experience", "unrealistic salary"},
		},
		{
			name:     "daily rate with no experience",
			text:     "1000 daily, no experience needed",
			score:    10 + 25,
			keywords: []string{"no experience", "unrealistic salary"},
		},
		{"salary without no experience", "Rs. 50,000 salary", 0, []string{}},
		{
			name:     "legitimacy offsets a keyword",
			text:     "Data entry clerk, ABC Pvt Ltd",
			score:    15 - 10,
			keywords: []string{"data entry"},
		},
		{
			name:     "requirements offset",
			text:     "Data entry. Experience required. Cash payment.",
			score:    15 + 25 - 15,
			keywords: []string{"cash payment", "data entry"},
		},
		{
			name:     "contact offset",
			text:     "Refundable deposit required, email: hr@x.lk",
			score:    30 + 20 - 20,
			keywords: []string{"deposit required", "refundable"},
		},
		{"no signals", "Hello world", 0, []string{}},
	}

	scorer := newScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := scorer.Score(context.Background(), tt.text)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.keywords, result.Keywords)
		})
	}
}

func TestKeywordScorer_CaseInsensitive(t *testing.T) {
	scorer := newScorer()
	lower := scorer.Score(context.Background(), "registration fee")
	upper := scorer.Score(context.Background(), "REGISTRATION FEE")
	mixed := scorer.Score(context.Background(), "Registration Fee")

	assert.Equal(t, lower, upper)
	assert.Equal(t, lower, mixed)
	assert.Equal(t, 35, lower.Score)
}

func TestKeywordScorer_AlwaysWithinBounds(t *testing.T) {
	scorer := newScorer()
	var all []string
	for _, p := range service.DefaultPatternTable().Patterns() {
		all = append(all, p.Keyword)
	}

	texts := []string{
		"a",
		strings.Join(all, " "),
		"company pvt ltd office experience required skills: email: careers@",
		strings.Repeat("easy money ", 1000),
	}
	for _, text := range texts {
		result := scorer.Score(context.Background(), text)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
	}
}

func TestKeywordScorer_Deterministic(t *testing.T) {
	scorer := newScorer()
	first := scorer.Score(context.Background(), testutil.LocalScamPostText)
	for range 10 {
		assert.Equal(t, first, scorer.Score(context.Background(), testutil.LocalScamPostText))
	}
}

func TestKeywordScorer_MonotonicInKeywords(t *testing.T) {
	scorer := newScorer()
	base := "Junior role at a startup."
	prev := scorer.Score(context.Background(), base).Score

	text := base
	for _, p := range service.DefaultPatternTable().Patterns() {
		text += " " + p.Keyword + "."
		result := scorer.Score(context.Background(), text)
		assert.Contains(t, result.Keywords, p.Keyword)
		if prev < 100 {
			assert.Greater(t, result.Score, prev, "adding %q did not raise the score", p.Keyword)
		} else {
			assert.Equal(t, 100, result.Score)
		}
		prev = result.Score
	}
}

func TestKeywordScorer_ConcurrentUse(t *testing.T) {
	scorer := newScorer()
	want := scorer.Score(context.Background(), testutil.ScamPostText)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, scorer.Score(context.Background(), testutil.ScamPostText))
		}()
	}
	wg.Wait()
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, service.Clamp(-45))
	assert.Equal(t, 0, service.Clamp(0))
	assert.Equal(t, 73, service.Clamp(73))
	assert.Equal(t, 100, service.Clamp(100))
	assert.Equal(t, 100, service.Clamp(215))
}
