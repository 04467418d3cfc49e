package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/events"
	pkgkafka "github.com/dhxnujaK/Fraud-Alert-LK/pkg/kafka"
)

// Header keys set on every published event.
const (
	HeaderEventType   = "event_type"
	HeaderEventID     = "event_id"
	HeaderContentType = "content-type"
)

// MessageProducer is satisfied by *pkgkafka.Producer.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher is the Kafka port.EventPublisher. Messages are keyed by
// assessment ID so one assessment's events land on one partition in order.
type Publisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

func NewPublisher(producer MessageProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{producer: producer, topic: topic, logger: logger}
}

// Publish encodes every event before sending any, so a bad event aborts the
// whole batch.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}

	batch := make([]pkgkafka.Message, len(domainEvents))
	for i, evt := range domainEvents {
		msg, err := encode(evt)
		if err != nil {
			return err
		}
		batch[i] = msg
	}

	if err := p.producer.Publish(ctx, p.topic, batch...); err != nil {
		return fmt.Errorf("publish %d events to %s: %w", len(batch), p.topic, err)
	}
	p.logger.DebugContext(ctx, "events published", "topic", p.topic, "count", len(batch))
	return nil
}

func encode(evt events.DomainEvent) (pkgkafka.Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return pkgkafka.Message{}, fmt.Errorf("encode %s: %w", evt.EventType(), err)
	}
	return pkgkafka.Message{
		Key:   []byte(evt.AggregateID().String()),
		Value: payload,
		Headers: map[string]string{
			HeaderEventType:   evt.EventType(),
			HeaderEventID:     evt.EventID().String(),
			HeaderContentType: "application/json",
		},
	}, nil
}
