package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/model"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/events"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	mu           sync.Mutex
	saved        []*model.JobPostAssessment
	saveFunc     func(ctx context.Context, a *model.JobPostAssessment) error
	findByIDFunc func(ctx context.Context, id uuid.UUID) (*model.JobPostAssessment, error)
}

func (m *mockAssessmentRepository) Save(ctx context.Context, a *model.JobPostAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JobPostAssessment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, port.ErrAssessmentNotFound
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockTextExtractor struct {
	text  string
	err   error
	calls int
}

func (m *mockTextExtractor) Extract(_ context.Context, _ []byte, _ string) (string, error) {
	m.calls++
	return m.text, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
