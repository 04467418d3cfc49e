package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/model"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/valueobject"
	pkgpostgres "github.com/dhxnujaK/Fraud-Alert-LK/pkg/postgres"
)

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save records an assessment and its keywords in one transaction.
func (r *AssessmentRepository) Save(ctx context.Context, a *model.JobPostAssessment) error {
	features, err := encodeFeatures(a.Features())
	if err != nil {
		return err
	}

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO job_post_assessments (
				id, post_id, source, extracted_text,
				fraud_score, is_fraudulent, risk_band,
				features, assessed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			a.ID(), stripNUL(a.PostID()), a.Source().String(), stripNUL(a.ExtractedText()),
			a.FraudScore(), a.IsFraudulent(), a.RiskBand().String(),
			features, a.Timestamp(),
		)
		if err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}

		if len(a.SuspiciousKeywords()) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for i, kw := range a.SuspiciousKeywords() {
			batch.Queue(
				`INSERT INTO assessment_keywords (assessment_id, position, keyword) VALUES ($1, $2, $3)`,
				a.ID(), i, kw,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to save keywords: %w", err)
		}
		return nil
	})
}

// FindByID retrieves an assessment by its unique identifier. It returns
// port.ErrAssessmentNotFound when no row matches.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JobPostAssessment, error) {
	var (
		postID       string
		sourceStr    string
		text         string
		fraudScore   int
		isFraudulent bool
		bandStr      string
		features     []byte
		assessedAt   time.Time
	)

	err := r.pool.QueryRow(ctx, `
		SELECT post_id, source, extracted_text,
			fraud_score, is_fraudulent, risk_band,
			features, assessed_at
		FROM job_post_assessments
		WHERE id = $1`, id,
	).Scan(&postID, &sourceStr, &text, &fraudScore, &isFraudulent, &bandStr, &features, &assessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, port.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	source, err := valueobject.SourceFromString(sourceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	band, err := valueobject.RiskBandFromString(bandStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk band: %w", err)
	}

	keywords, err := r.loadKeywords(ctx, id)
	if err != nil {
		return nil, err
	}

	a := model.Reconstruct(id, text, source, postID, fraudScore, isFraudulent, band, keywords, assessedAt.UTC())
	if len(features) > 0 {
		var f valueobject.TextFeatures
		if err := json.Unmarshal(features, &f); err != nil {
			return nil, fmt.Errorf("failed to decode features: %w", err)
		}
		a.AttachFeatures(f)
	}
	return a, nil
}

// Ping checks database connectivity for readiness probes.
func (r *AssessmentRepository) Ping(ctx context.Context) error {
	return pkgpostgres.HealthCheck(ctx, r.pool)
}

func (r *AssessmentRepository) loadKeywords(ctx context.Context, id uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT keyword FROM assessment_keywords WHERE assessment_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords: %w", err)
	}

	keywords, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan keywords: %w", err)
	}
	if keywords == nil {
		keywords = make([]string, 0)
	}
	return keywords, nil
}

func encodeFeatures(f *valueobject.TextFeatures) ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode features: %w", err)
	}
	return b, nil
}

// stripNUL removes NUL bytes, which PostgreSQL text columns reject.
func stripNUL(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}
