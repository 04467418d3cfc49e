package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/events"
)

// LogPublisher is the port.EventPublisher used when no broker is configured.
// Each event becomes one log record with the payload embedded as JSON.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("publisher", "log")}
}

func (p *LogPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("encode %s: %w", evt.EventType(), err)
		}
		p.logger.LogAttrs(ctx, slog.LevelInfo, "domain event",
			slog.String("event_type", evt.EventType()),
			slog.String("event_id", evt.EventID().String()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.Any("payload", json.RawMessage(payload)),
		)
	}
	return nil
}
