package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
)

// ErrSkip marks a message the handler will never be able to process. The
// consumer commits past it instead of leaving it for redelivery.
var ErrSkip = errors.New("kafka: skip message")

// Handler processes one consumed message.
type Handler func(ctx context.Context, msg Message) error

// Consumer reads a single topic as a member of a consumer group.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	logger  *slog.Logger
	retry   func() backoff.BackOff
}

// retryPolicy backs off up to 30s between attempts and never gives up; only
// cancellation stops it.
func retryPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// NewConsumer joins cfg.ConsumerGroup on topic. Offsets start at the oldest
// retained message for a group that has never committed.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	if cfg.ConsumerGroup == "" {
		return nil, errors.New("kafka: consumer group is required")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	dialer, err := cfg.dialer()
	if err != nil {
		return nil, err
	}

	rc := kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.ConsumerGroup,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		StartOffset: kafkago.FirstOffset,
		Dialer:      dialer,
	}
	return &Consumer{
		reader:  kafkago.NewReader(rc),
		handler: handler,
		logger:  logger.With("topic", topic, "group", cfg.ConsumerGroup),
		retry:   retryPolicy,
	}, nil
}

// Start fetches and handles messages until ctx is canceled, which is not an
// error. A message is committed once the handler succeeds or returns ErrSkip.
// Any other handler error is retried with backoff on the same message, so a
// later commit on the partition can never move past an unprocessed one.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer started")
	for {
		m, err := c.reader.FetchMessage(ctx)
		switch {
		case ctx.Err() != nil:
			c.logger.Info("consumer stopped")
			return nil
		case err != nil:
			return fmt.Errorf("kafka: fetch: %w", err)
		}

		if !c.process(ctx, m) {
			continue
		}
		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.logger.Error("commit failed", "partition", m.Partition, "offset", m.Offset, "error", err)
		}
	}
}

// process runs the handler until it succeeds or skips the message, and
// reports whether the offset may be committed. It returns false only when
// ctx is canceled first.
func (c *Consumer) process(ctx context.Context, m kafkago.Message) bool {
	msg := toMessage(m)
	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		err := c.handler(ctx, msg)
		if errors.Is(err, ErrSkip) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(c.retry(), ctx), func(err error, wait time.Duration) {
		c.logger.Error("message handling failed, retrying",
			"partition", m.Partition, "offset", m.Offset, "attempt", attempt, "retry_in", wait, "error", err)
	})

	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrSkip):
		c.logger.Warn("message skipped", "partition", m.Partition, "offset", m.Offset, "reason", err)
		return true
	default:
		return false
	}
}

// Close leaves the group and closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("kafka: close reader: %w", err)
	}
	return nil
}

func toMessage(m kafkago.Message) Message {
	headers := make(map[string]string, len(m.Headers))
	for _, h := range m.Headers {
		headers[h.Key] = string(h.Value)
	}
	return Message{Key: m.Key, Value: m.Value, Headers: headers}
}
