package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"DomainFlip/internal/domain/models"
	domrepo "DomainFlip/internal/domain/repository"
)

const evaluationColumns = "scan_id, domain, estimated_value, registration_cost, profit_potential, time_to_sell, evaluated_at"

// SchemaStatements returns DDL for the evaluations table, suitable for
// Client.InitSchema.
func SchemaStatements(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
			scan_id String,
			domain String,
			estimated_value Int64,
			registration_cost String,
			profit_potential Float64,
			time_to_sell String,
			evaluated_at DateTime
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(evaluated_at)
		ORDER BY (scan_id, domain)`, database, table),
	}
}

// ClickHouseEvaluationStore implements EvaluationStore for ClickHouse.
type ClickHouseEvaluationStore struct {
	db    *sql.DB
	table string
}

// NewClickHouseEvaluationStore creates ClickHouse evaluation storage.
func NewClickHouseEvaluationStore(db *sql.DB, table string) domrepo.EvaluationStore {
	return &ClickHouseEvaluationStore{db: db, table: table}
}

func (s *ClickHouseEvaluationStore) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseEvaluationStore) Store(ctx context.Context, e *models.DomainEvaluation) error {
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?)", s.table, evaluationColumns)
	_, err := s.db.ExecContext(ctx, q,
		e.ScanID,
		e.Domain,
		int64(e.EstimatedValue),
		e.RegistrationCost,
		e.ProfitPotential,
		e.TimeToSell,
		evaluatedAt(e),
	)
	return err
}

func (s *ClickHouseEvaluationStore) StoreBatch(ctx context.Context, evals []models.DomainEvaluation) error {
	if len(evals) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(evals); start += chunkSize {
		end := start + chunkSize
		if end > len(evals) {
			end = len(evals)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*7)
		for i := start; i < end; i++ {
			e := evals[i]
			if e.Domain == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				e.ScanID,
				e.Domain,
				int64(e.EstimatedValue),
				e.RegistrationCost,
				e.ProfitPotential,
				e.TimeToSell,
				evaluatedAt(&e),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", s.table, evaluationColumns, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseEvaluationStore) Query(ctx context.Context, scanID string, from, to time.Time, limit int) ([]models.DomainEvaluation, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if scanID != "" {
		q := fmt.Sprintf("SELECT %s FROM %s WHERE scan_id = ? AND evaluated_at >= ? AND evaluated_at <= ? ORDER BY profit_potential DESC LIMIT ?", evaluationColumns, s.table)
		rows, err = s.db.QueryContext(ctx, q, scanID, from, to, limit)
	} else {
		q := fmt.Sprintf("SELECT %s FROM %s WHERE evaluated_at >= ? AND evaluated_at <= ? ORDER BY evaluated_at DESC, profit_potential DESC LIMIT ?", evaluationColumns, s.table)
		rows, err = s.db.QueryContext(ctx, q, from, to, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	out := make([]models.DomainEvaluation, 0, limit)
	for rows.Next() {
		var (
			e   models.DomainEvaluation
			val int64
			ts  time.Time
		)
		if err := rows.Scan(&e.ScanID, &e.Domain, &val, &e.RegistrationCost, &e.ProfitPotential, &e.TimeToSell, &ts); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		e.EstimatedValue = int(val)
		e.EvaluatedAt = ts
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *ClickHouseEvaluationStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseEvaluationStore) Close() error {
	return nil // Managed by pkg
}

func evaluatedAt(e *models.DomainEvaluation) time.Time {
	if e.EvaluatedAt.IsZero() {
		return time.Now()
	}
	return e.EvaluatedAt
}
