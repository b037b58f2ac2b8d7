package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/seat-planner/pkg/db"
)

const insertRunSQL = `
	INSERT INTO seating_run (id, created_at, input_file, record_count, assigned_count,
	                         unassigned_count, data_error_count, success)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// GetRuns retrieves all seating runs, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.SeatingRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, input_file, record_count, assigned_count,
		       unassigned_count, data_error_count, success
		FROM seating_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seating runs: %w", err)
	}
	defer rows.Close()

	var runs []db.SeatingRun
	for rows.Next() {
		var r db.SeatingRun
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.InputFile, &r.RecordCount, &r.AssignedCount,
			&r.UnassignedCount, &r.DataErrorCount, &r.Success); err != nil {
			return nil, fmt.Errorf("failed to scan seating run: %w", err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seating runs: %w", err)
	}

	return runs, nil
}

// SaveRun inserts a run and its assignment records in one transaction, so a failed
// batch never leaves a run without assignments
func (d *DB) SaveRun(ctx context.Context, run *db.SeatingRun, assignments []db.SeatAssignment) error {
	return d.withTx(ctx, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, saveRunBatch(run, assignments)).Close(); err != nil {
			return fmt.Errorf("failed to save seating run %s: %w", run.ID, err)
		}
		return nil
	})
}

// saveRunBatch queues the run insert followed by its assignment inserts
func saveRunBatch(run *db.SeatingRun, assignments []db.SeatAssignment) *pgx.Batch {
	batch := &pgx.Batch{}
	batch.Queue(insertRunSQL, runArgs(run)...)
	queueAssignments(batch, assignments)
	return batch
}

func runArgs(run *db.SeatingRun) []any {
	return []any{run.ID, run.CreatedAt.UTC(), run.InputFile, run.RecordCount, run.AssignedCount,
		run.UnassignedCount, run.DataErrorCount, run.Success}
}
