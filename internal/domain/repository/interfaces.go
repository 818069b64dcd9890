package repository

import (
	"context"
	"time"

	"DomainFlip/internal/domain/models"
)

// TrendSource searches an external code-hosting API for repositories matching
// a query. Failures are returned, never swallowed; the caller decides how a
// failed query degrades the scan.
type TrendSource interface {
	SearchRepos(ctx context.Context, query string) ([]models.Repo, error)
}

// Publisher publishes domain evaluations to an event backend.
type Publisher interface {
	Publish(ctx context.Context, e *models.DomainEvaluation) error
	PublishBatch(ctx context.Context, evals []models.DomainEvaluation) error
	Close() error
}

// EvaluationStore persists domain evaluations per scan.
type EvaluationStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, e *models.DomainEvaluation) error
	StoreBatch(ctx context.Context, evals []models.DomainEvaluation) error
	Query(ctx context.Context, scanID string, from, to time.Time, limit int) ([]models.DomainEvaluation, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational counters for the scan pipeline.
type Metrics interface {
	RecordReposFetched(query string, n int)
	RecordDomainsGenerated(n int)
	RecordEvaluationSent(backend string, tld string)
	RecordError(kind string)
	RecordPortfolio(size, investment int, profit, roi float64)
	RecordLatency(op string, seconds float64)
}
