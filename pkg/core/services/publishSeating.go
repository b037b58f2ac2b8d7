package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/internal/config"
	"github.com/jakechorley/seat-planner/pkg/db"
)

// PublishSeatingStore defines the database operations needed for publishing a run
type PublishSeatingStore interface {
	GetRuns(ctx context.Context) ([]db.SeatingRun, error)
	GetAssignments(ctx context.Context, runID string) ([]db.SeatAssignment, error)
}

// SeatingPublisher appends rows to a spreadsheet tab
type SeatingPublisher interface {
	PublishAssignments(ctx context.Context, spreadsheetID, tab string, header []string, rows [][]string) error
}

// PublishedHeader is the column layout of published rows
var PublishedHeader = []string{"Run", "Date", "ID", "Name", "Queue", "Start", "Stop", "Seat", "Area", "Outcome", "Reason"}

// PublishSeatingResult describes what was published
type PublishSeatingResult struct {
	Run      db.SeatingRun
	Tab      string
	RowCount int
}

// PublishSeating appends the assignment rows of a stored run to the configured sheet tab.
// If runID is empty, it defaults to the latest run.
func PublishSeating(
	ctx context.Context,
	database PublishSeatingStore,
	publisher SeatingPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
) (*PublishSeatingResult, error) {
	logger.Debug("Starting publishSeating", zap.String("run_id", runID))

	if cfg.Publish == nil {
		return nil, fmt.Errorf("publishing is not configured - add a publish section to the config file")
	}

	runs, err := database.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs found - run assignSeats first")
	}

	var target *db.SeatingRun
	if runID == "" {
		target = findLatestRun(runs)
		logger.Debug("No run ID provided, using latest run", zap.String("id", target.ID))
	} else {
		for i := range runs {
			if runs[i].ID == runID {
				target = &runs[i]
				break
			}
		}
		if target == nil {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
	}

	assignments, err := database.GetAssignments(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	logger.Debug("Fetched assignments", zap.Int("count", len(assignments)))

	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, publishedRow(a))
	}

	if err := publisher.PublishAssignments(ctx, cfg.Publish.SheetID, cfg.Publish.Tab, PublishedHeader, rows); err != nil {
		return nil, fmt.Errorf("failed to publish run %s: %w", target.ID, err)
	}
	logger.Info("Published run", zap.String("run_id", target.ID), zap.String("tab", cfg.Publish.Tab), zap.Int("rows", len(rows)))

	return &PublishSeatingResult{Run: *target, Tab: cfg.Publish.Tab, RowCount: len(rows)}, nil
}

func publishedRow(a db.SeatAssignment) []string {
	seat, area := "", ""
	if a.Seat != nil {
		seat = strconv.Itoa(*a.Seat)
	}
	if a.Area != nil {
		area = *a.Area
	}
	return []string{a.RunID, a.Date, a.AgentID, a.Name, a.Queue, a.Start, a.Stop, seat, area, a.Outcome, a.Reason}
}
