package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/seat-planner/pkg/db"
)

// GetAssignments retrieves the assignment records of one run in input order
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.SeatAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id, row_number, agent_id, name, shift_date, queue, start_time, stop_time,
		       seat, area, outcome, reason
		FROM seat_assignment
		WHERE run_id = $1
		ORDER BY row_number
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seat assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.SeatAssignment
	for rows.Next() {
		var a db.SeatAssignment
		var date *time.Time
		if err := rows.Scan(&a.RunID, &a.Row, &a.AgentID, &a.Name, &date, &a.Queue, &a.Start, &a.Stop,
			&a.Seat, &a.Area, &a.Outcome, &a.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan seat assignment: %w", err)
		}
		if date != nil {
			a.Date = date.Format("2006-01-02")
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seat assignments: %w", err)
	}

	return assignments, nil
}

// queueAssignments queues one insert per assignment record
func queueAssignments(batch *pgx.Batch, assignments []db.SeatAssignment) {
	for _, a := range assignments {
		// Data error rows may carry an unparsable date
		var date *string
		if a.Date != "" {
			date = &a.Date
		}
		batch.Queue(`
			INSERT INTO seat_assignment (run_id, row_number, agent_id, name, shift_date, queue,
			                             start_time, stop_time, seat, area, outcome, reason)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, a.RunID, a.Row, a.AgentID, a.Name, date, a.Queue, a.Start, a.Stop, a.Seat, a.Area, a.Outcome, a.Reason)
	}
}
