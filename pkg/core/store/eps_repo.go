// Package store persists batch EPS results in Postgres.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"eps_parser/pkg/core/batch"
	"eps_parser/pkg/core/eps"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS eps_results (
	run_id      TEXT NOT NULL,
	filename    TEXT NOT NULL,
	eps         TEXT,
	occurrences JSONB NOT NULL,
	error       TEXT,
	updated_at  TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (run_id, filename)
);`

const upsertSQL = `
	INSERT INTO eps_results (run_id, filename, eps, occurrences, error, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (run_id, filename)
	DO UPDATE SET
		eps = EXCLUDED.eps,
		occurrences = EXCLUDED.occurrences,
		error = EXCLUDED.error,
		updated_at = EXCLUDED.updated_at;
`

// EPSRepo stores one row per filing per batch run.
type EPSRepo struct{}

// NewEPSRepo creates a new repository instance.
func NewEPSRepo() *EPSRepo {
	return &EPSRepo{}
}

// EnsureSchema creates the eps_results table if needed.
func (r *EPSRepo) EnsureSchema(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return ErrPoolNotInitialized
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save upserts every result of the report in one transaction.
func (r *EPSRepo) Save(ctx context.Context, report *batch.Report) error {
	pool := GetPool()
	if pool == nil {
		return ErrPoolNotInitialized
	}

	rows, err := toRows(report)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	b := &pgx.Batch{}
	for _, row := range rows {
		b.Queue(upsertSQL, row.args()...)
	}
	if err := tx.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return tx.Commit(ctx)
}

// Load returns the stored results of a run, ordered by filename.
func (r *EPSRepo) Load(ctx context.Context, runID string) ([]batch.FileResult, error) {
	pool := GetPool()
	if pool == nil {
		return nil, ErrPoolNotInitialized
	}

	rows, err := pool.Query(ctx,
		`SELECT filename, eps, occurrences FROM eps_results WHERE run_id = $1 ORDER BY filename`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	defer rows.Close()

	var results []batch.FileResult
	for rows.Next() {
		var (
			filename string
			value    *string
			occJSON  []byte
		)
		if err := rows.Scan(&filename, &value, &occJSON); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		res := batch.FileResult{Filename: filename}
		if value != nil {
			res.EPS, res.Found = *value, true
		}
		if err := json.Unmarshal(occJSON, &res.Occurrences); err != nil {
			return nil, fmt.Errorf("failed to decode occurrences for %s: %w", filename, err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// resultRow is one eps_results row ready for the upsert.
type resultRow struct {
	runID       string
	filename    string
	eps         *string
	occurrences []byte
	errText     *string
	updatedAt   time.Time
}

func (r resultRow) args() []any {
	return []any{r.runID, r.filename, r.eps, r.occurrences, r.errText, r.updatedAt}
}

func toRows(report *batch.Report) ([]resultRow, error) {
	now := time.Now()
	rows := make([]resultRow, 0, len(report.Results))
	for _, res := range report.Results {
		occs := res.Occurrences
		if occs == nil {
			occs = []eps.Occurrence{}
		}
		data, err := json.Marshal(occs)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal occurrences for %s: %w", res.Filename, err)
		}

		row := resultRow{
			runID:       report.RunID,
			filename:    res.Filename,
			occurrences: data,
			updatedAt:   now,
		}
		if res.Found {
			v := res.EPS
			row.eps = &v
		}
		if res.Err != nil {
			e := res.Err.Error()
			row.errText = &e
		}
		rows = append(rows, row)
	}
	return rows, nil
}
