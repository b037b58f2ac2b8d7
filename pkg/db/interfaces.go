package db

import "context"

// RunStore defines the interface for seating run operations
type RunStore interface {
	GetRuns(ctx context.Context) ([]SeatingRun, error)
}

// AssignmentStore defines the interface for per-record assignment operations
type AssignmentStore interface {
	GetAssignments(ctx context.Context, runID string) ([]SeatAssignment, error)
}

// RunWriter stores a run together with its assignment records
type RunWriter interface {
	SaveRun(ctx context.Context, run *SeatingRun, assignments []SeatAssignment) error
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	RunStore
	AssignmentStore
	RunWriter
}
