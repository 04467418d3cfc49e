package valueobject

import "fmt"

// FraudThreshold is the lowest fraud score judged fraudulent.
const FraudThreshold = 60

// IsFraudulentScore reports whether score reaches FraudThreshold.
func IsFraudulentScore(score int) bool {
	return score >= FraudThreshold
}

// RiskBand is an immutable value object classifying a fraud score.
type RiskBand struct {
	value string
	color string
}

var (
	RiskBandMinimal  = RiskBand{value: "MINIMAL", color: "#388e3c"}
	RiskBandLow      = RiskBand{value: "LOW", color: "#7cb342"}
	RiskBandMedium   = RiskBand{value: "MEDIUM", color: "#fbc02d"}
	RiskBandHigh     = RiskBand{value: "HIGH", color: "#f57c00"}
	RiskBandCritical = RiskBand{value: "CRITICAL", color: "#d32f2f"}
)

// RiskBandFromString reconstructs a RiskBand from its string representation.
func RiskBandFromString(s string) (RiskBand, error) {
	switch s {
	case "MINIMAL":
		return RiskBandMinimal, nil
	case "LOW":
		return RiskBandLow, nil
	case "MEDIUM":
		return RiskBandMedium, nil
	case "HIGH":
		return RiskBandHigh, nil
	case "CRITICAL":
		return RiskBandCritical, nil
	default:
		return RiskBand{}, fmt.Errorf("invalid risk band: %s", s)
	}
}

// RiskBandFromScore classifies a score. Thresholds are checked from the top
// and the first match wins, so scores above 100 are CRITICAL and negative
// scores are MINIMAL.
func RiskBandFromScore(score int) RiskBand {
	switch {
	case score >= 80:
		return RiskBandCritical
	case score >= 60:
		return RiskBandHigh
	case score >= 40:
		return RiskBandMedium
	case score >= 20:
		return RiskBandLow
	default:
		return RiskBandMinimal
	}
}

// String returns the band name.
func (b RiskBand) String() string {
	return b.value
}

// Color returns the hex display color associated with the band.
func (b RiskBand) Color() string {
	return b.color
}

// IsZero returns true if the RiskBand has not been set.
func (b RiskBand) IsZero() bool {
	return b.value == ""
}

// Equal checks equality with another RiskBand.
func (b RiskBand) Equal(other RiskBand) bool {
	return b.value == other.value
}
