package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted for every scored job post.
	EventTypeAssessmentCompleted = "fraud.assessment.completed"

	// EventTypeFraudulentPostDetected is emitted when a job post scores at or
	// above the fraud threshold.
	EventTypeFraudulentPostDetected = "fraud.post.detected"

	aggregateType = "JobPostAssessment"
)

// AssessmentCompleted is published when a job post has been scored.
type AssessmentCompleted struct {
	events.BaseEvent
	PostID             string    `json:"post_id,omitempty"`
	Source             string    `json:"source"`
	FraudScore         int       `json:"fraud_score"`
	IsFraudulent       bool      `json:"is_fraudulent"`
	RiskBand           string    `json:"risk_band"`
	SuspiciousKeywords []string  `json:"suspicious_keywords"`
	AssessedAt         time.Time `json:"assessed_at"`
}

// NewAssessmentCompleted creates an AssessmentCompleted event.
func NewAssessmentCompleted(
	assessmentID uuid.UUID,
	postID, source string,
	fraudScore int,
	isFraudulent bool,
	riskBand string,
	keywords []string,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:          events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, aggregateType),
		PostID:             postID,
		Source:             source,
		FraudScore:         fraudScore,
		IsFraudulent:       isFraudulent,
		RiskBand:           riskBand,
		SuspiciousKeywords: keywords,
		AssessedAt:         assessedAt,
	}
}

// FraudulentPostDetected is published when a job post is judged fraudulent,
// so that moderation can take the post down or warn readers.
type FraudulentPostDetected struct {
	events.BaseEvent
	PostID             string    `json:"post_id,omitempty"`
	FraudScore         int       `json:"fraud_score"`
	RiskBand           string    `json:"risk_band"`
	SuspiciousKeywords []string  `json:"suspicious_keywords"`
	DetectedAt         time.Time `json:"detected_at"`
}

// NewFraudulentPostDetected creates a FraudulentPostDetected event.
func NewFraudulentPostDetected(
	assessmentID uuid.UUID,
	postID string,
	fraudScore int,
	riskBand string,
	keywords []string,
	detectedAt time.Time,
) FraudulentPostDetected {
	return FraudulentPostDetected{
		BaseEvent:          events.NewBaseEvent(EventTypeFraudulentPostDetected, assessmentID, aggregateType),
		PostID:             postID,
		FraudScore:         fraudScore,
		RiskBand:           riskBand,
		SuspiciousKeywords: keywords,
		DetectedAt:         detectedAt,
	}
}
