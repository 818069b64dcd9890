package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"DomainFlip/internal/domain/models"
	drepo "DomainFlip/internal/domain/repository"
)

// EvaluationProcessor routes finished domain evaluations to the configured
// backend: a Kafka topic or a ClickHouse table.
type EvaluationProcessor struct {
	pub     drepo.Publisher
	store   drepo.EvaluationStore
	metrics drepo.Metrics
	backend string
}

// NewEvaluationProcessor creates a new EvaluationProcessor instance.
func NewEvaluationProcessor(
	pub drepo.Publisher,
	store drepo.EvaluationStore,
	metrics drepo.Metrics,
	backend string,
) *EvaluationProcessor {
	return &EvaluationProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
	}
}

// Process routes a single evaluation to the configured backend.
func (p *EvaluationProcessor) Process(ctx context.Context, e *models.DomainEvaluation) error {
	if e == nil {
		return fmt.Errorf("evaluation is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, e)
	case "clickhouse":
		err = p.store.Store(ctx, e)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process evaluation: %w", err)
	}

	p.metrics.RecordEvaluationSent(p.backend, tld(e.Domain))
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch routes multiple evaluations in one backend call.
func (p *EvaluationProcessor) ProcessBatch(ctx context.Context, evals []models.DomainEvaluation) error {
	if len(evals) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, evals)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, evals)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, e := range evals {
		p.metrics.RecordEvaluationSent(p.backend, tld(e.Domain))
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (p *EvaluationProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}

func tld(domain string) string {
	if i := strings.LastIndex(domain, "."); i >= 0 {
		return domain[i+1:]
	}
	return "unknown"
}
