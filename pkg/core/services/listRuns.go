package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jakechorley/seat-planner/pkg/db"
)

// ListRunsStore defines the database operations needed to list runs
type ListRunsStore interface {
	GetRuns(ctx context.Context) ([]db.SeatingRun, error)
}

// ListRuns returns the stored runs, newest first
func ListRuns(ctx context.Context, database ListRunsStore) ([]db.SeatingRun, error) {
	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}
