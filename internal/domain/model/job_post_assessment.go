package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/event"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/valueobject"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/events"
)

// JobPostAssessment is the aggregate root for a scored job post.
type JobPostAssessment struct {
	timestamp          time.Time
	features           *valueobject.TextFeatures
	source             valueobject.Source
	riskBand           valueobject.RiskBand
	extractedText      string
	postID             string
	suspiciousKeywords []string
	events             events.EventCollector
	fraudScore         int
	isFraudulent       bool
	id                 uuid.UUID
}

// NewJobPostAssessment records the score of text and emits its events.
// postID is the caller's own reference for the post and may be empty.
func NewJobPostAssessment(
	text string,
	source valueobject.Source,
	postID string,
	fraudScore int,
	keywords []string,
) (*JobPostAssessment, error) {
	if text == "" {
		return nil, fmt.Errorf("extracted text is required")
	}
	if source.IsZero() {
		return nil, fmt.Errorf("source is required")
	}
	if fraudScore < 0 || fraudScore > 100 {
		return nil, fmt.Errorf("fraud score must be between 0 and 100, got %d", fraudScore)
	}
	if keywords == nil {
		keywords = make([]string, 0)
	}

	a := &JobPostAssessment{
		id:                 uuid.New(),
		extractedText:      text,
		source:             source,
		postID:             postID,
		fraudScore:         fraudScore,
		isFraudulent:       valueobject.IsFraudulentScore(fraudScore),
		riskBand:           valueobject.RiskBandFromScore(fraudScore),
		suspiciousKeywords: keywords,
		timestamp:          time.Now().UTC(),
	}

	a.events.Record(event.NewAssessmentCompleted(
		a.id, a.postID, a.source.String(),
		a.fraudScore, a.isFraudulent, a.riskBand.String(),
		a.suspiciousKeywords, a.timestamp,
	))
	if a.isFraudulent {
		a.events.Record(event.NewFraudulentPostDetected(
			a.id, a.postID, a.fraudScore, a.riskBand.String(),
			a.suspiciousKeywords, a.timestamp,
		))
	}

	return a, nil
}

// AttachFeatures stores informational text features.
func (a *JobPostAssessment) AttachFeatures(f valueobject.TextFeatures) {
	a.features = &f
}

// Reconstruct rebuilds a JobPostAssessment from persisted data (no validation, no events).
func Reconstruct(
	id uuid.UUID,
	text string,
	source valueobject.Source,
	postID string,
	fraudScore int,
	isFraudulent bool,
	riskBand valueobject.RiskBand,
	keywords []string,
	timestamp time.Time,
) *JobPostAssessment {
	return &JobPostAssessment{
		id:                 id,
		extractedText:      text,
		source:             source,
		postID:             postID,
		fraudScore:         fraudScore,
		isFraudulent:       isFraudulent,
		riskBand:           riskBand,
		suspiciousKeywords: keywords,
		timestamp:          timestamp,
	}
}

// --- Accessors ---

func (a *JobPostAssessment) ID() uuid.UUID                       { return a.id }
func (a *JobPostAssessment) ExtractedText() string               { return a.extractedText }
func (a *JobPostAssessment) Source() valueobject.Source          { return a.source }
func (a *JobPostAssessment) PostID() string                      { return a.postID }
func (a *JobPostAssessment) FraudScore() int                     { return a.fraudScore }
func (a *JobPostAssessment) IsFraudulent() bool                  { return a.isFraudulent }
func (a *JobPostAssessment) RiskBand() valueobject.RiskBand      { return a.riskBand }
func (a *JobPostAssessment) SuspiciousKeywords() []string        { return a.suspiciousKeywords }
func (a *JobPostAssessment) Timestamp() time.Time                { return a.timestamp }
func (a *JobPostAssessment) Features() *valueobject.TextFeatures { return a.features }

// DomainEvents returns all accumulated domain events and clears them.
func (a *JobPostAssessment) DomainEvents() []events.DomainEvent {
	return a.events.Drain()
}
