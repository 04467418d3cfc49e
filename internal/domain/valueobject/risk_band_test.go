package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/valueobject"
)

func TestRiskBandFromScore(t *testing.T) {
	tests := []struct {
		score    int
		expected valueobject.RiskBand
	}{
		{-5, valueobject.RiskBandMinimal},
		{0, valueobject.RiskBandMinimal},
		{19, valueobject.RiskBandMinimal},
		{20, valueobject.RiskBandLow},
		{39, valueobject.RiskBandLow},
		{40, valueobject.RiskBandMedium},
		{50, valueobject.RiskBandMedium},
		{59, valueobject.RiskBandMedium},
		{60, valueobject.RiskBandHigh},
		{79, valueobject.RiskBandHigh},
		{80, valueobject.RiskBandCritical},
		{95, valueobject.RiskBandCritical},
		{100, valueobject.RiskBandCritical},
		{150, valueobject.RiskBandCritical},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			got := valueobject.RiskBandFromScore(tt.score)
			assert.True(t, tt.expected.Equal(got), "score %d: got %s, want %s", tt.score, got, tt.expected)
		})
	}
}

func TestRiskBand_Color(t *testing.T) {
	assert.Equal(t, "#d32f2f", valueobject.RiskBandCritical.Color())
	assert.Equal(t, "#f57c00", valueobject.RiskBandHigh.Color())
	assert.Equal(t, "#fbc02d", valueobject.RiskBandMedium.Color())
	assert.Equal(t, "#7cb342", valueobject.RiskBandLow.Color())
	assert.Equal(t, "#388e3c", valueobject.RiskBandMinimal.Color())
}

func TestRiskBandFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskBand
		wantErr  bool
	}{
		{"MINIMAL", valueobject.RiskBandMinimal, false},
		{"LOW", valueobject.RiskBandLow, false},
		{"MEDIUM", valueobject.RiskBandMedium, false},
		{"HIGH", valueobject.RiskBandHigh, false},
		{"CRITICAL", valueobject.RiskBandCritical, false},
		{"critical", valueobject.RiskBand{}, true},
		{"", valueobject.RiskBand{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskBandFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
			assert.Equal(t, tt.expected.Color(), result.Color())
		})
	}
}

func TestRiskBand_IsZero(t *testing.T) {
	assert.True(t, valueobject.RiskBand{}.IsZero())
	assert.False(t, valueobject.RiskBandMinimal.IsZero())
}

func TestSourceFromString(t *testing.T) {
	s, err := valueobject.SourceFromString("")
	require.NoError(t, err)
	assert.True(t, s.Equal(valueobject.SourceText))

	s, err = valueobject.SourceFromString("IMAGE")
	require.NoError(t, err)
	assert.Equal(t, "IMAGE", s.String())

	_, err = valueobject.SourceFromString("PDF")
	require.Error(t, err)
}
