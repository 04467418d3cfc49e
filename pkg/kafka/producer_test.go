package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
	assert.Nil(t, p.transport)
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(Config{})
	require.Error(t, err)
}

func TestNewProducer_SASLTransport(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "svc",
		SASLPassword:  "secret",
	})
	require.NoError(t, err)
	require.NotNil(t, p.transport)
	assert.NotNil(t, p.transport.TLS)
	assert.NotNil(t, p.transport.SASL)
}

func TestNewProducer_UnknownMechanism(t *testing.T) {
	_, err := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		SASLEnabled:   true,
		SASLMechanism: "GSSAPI",
	})
	require.Error(t, err)
}

func TestProducer_WriterPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	w1 := p.writer("fraud.assessments")
	w2 := p.writer("fraud.assessments")
	w3 := p.writer("job-posts.submitted")

	assert.Same(t, w1, w2)
	assert.NotSame(t, w1, w3)
	assert.Equal(t, "fraud.assessments", w1.Topic)

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestProducer_PublishNothingIsNoop(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "fraud.assessments"))
	assert.Empty(t, p.writers)
}

func TestNewConsumer_RequiresGroup(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := NewConsumer(Config{Brokers: []string{"localhost:9092"}}, "job-posts.submitted", nil, logger)
	require.Error(t, err)
}

func TestToMessage(t *testing.T) {
	msg := toMessage(kafkago.Message{
		Key:   []byte("post-1"),
		Value: []byte(`{"text":"hello"}`),
		Headers: []kafkago.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})

	assert.Equal(t, "post-1", string(msg.Key))
	assert.Equal(t, `{"text":"hello"}`, string(msg.Value))
	assert.Equal(t, "application/json", msg.Headers["content-type"])
}

func TestConsumer_ProcessCommitDecision(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	noWait := func() backoff.BackOff { return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3) }

	tests := []struct {
		name      string
		errs      []error
		commit    bool
		wantCalls int
	}{
		{"handled", []error{nil}, true, 1},
		{"skipped", []error{fmt.Errorf("bad payload: %w", ErrSkip)}, true, 1},
		{"succeeds after retries", []error{errors.New("db down"), errors.New("db down"), nil}, true, 3},
		{"skipped after a retry", []error{errors.New("db down"), ErrSkip}, true, 2},
		{"keeps failing", []error{errors.New("downstream unavailable")}, false, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			c := &Consumer{
				handler: func(context.Context, Message) error {
					err := tt.errs[min(calls, len(tt.errs)-1)]
					calls++
					return err
				},
				logger: logger,
				retry:  noWait,
			}
			assert.Equal(t, tt.commit, c.process(context.Background(), kafkago.Message{Key: []byte("k")}))
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestConsumer_ProcessStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	c := &Consumer{
		handler: func(context.Context, Message) error {
			calls++
			if calls == 2 {
				cancel()
			}
			return errors.New("downstream unavailable")
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		retry:  func() backoff.BackOff { return &backoff.ZeroBackOff{} },
	}

	assert.False(t, c.process(ctx, kafkago.Message{Key: []byte("k")}))
	assert.Equal(t, 2, calls)
}
