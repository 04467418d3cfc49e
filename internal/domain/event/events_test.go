package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/event"
)

func TestAssessmentCompleted_JSON(t *testing.T) {
	id := uuid.New()
	evt := event.NewAssessmentCompleted(id, "", "TEXT", 30, false, "LOW", []string{"data entry"}, time.Now().UTC())

	payload, err := json.Marshal(evt)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(payload, &got))

	assert.Equal(t, event.EventTypeAssessmentCompleted, got["event_type"])
	assert.Equal(t, id.String(), got["aggregate_id"])
	assert.Equal(t, "JobPostAssessment", got["aggregate_type"])
	assert.Equal(t, float64(30), got["fraud_score"])
	assert.Equal(t, "LOW", got["risk_band"])
	assert.NotContains(t, got, "post_id")
}

func TestFraudulentPostDetected_CarriesPostID(t *testing.T) {
	evt := event.NewFraudulentPostDetected(uuid.New(), "board-123", 88, "CRITICAL", nil, time.Now().UTC())

	payload, err := json.Marshal(evt)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"post_id":"board-123"`)
	assert.Equal(t, event.EventTypeFraudulentPostDetected, evt.EventType())
}
