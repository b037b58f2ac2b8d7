package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/internal/config"
	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
	"github.com/jakechorley/seat-planner/pkg/core/verification"
	"github.com/jakechorley/seat-planner/pkg/db"
	"github.com/jakechorley/seat-planner/pkg/metrics"
	"github.com/jakechorley/seat-planner/pkg/workbook"
)

// RosterFiles defines the roster table operations needed by the services
type RosterFiles interface {
	ReadRecords(path string) ([]model.RawRecord, error)
	ReadAssignments(path string, queues model.QueueSet, bounds allocator.CategoryBounds) ([]allocator.Assignment, error)
	WriteAssignments(path string, assignments []allocator.Assignment, cat *catalog.Catalog) error
}

// AssignSeatsStore defines the database operations needed to persist a run
type AssignSeatsStore interface {
	SaveRun(ctx context.Context, run *db.SeatingRun, assignments []db.SeatAssignment) error
}

// AssignSeatsOptions controls a single assignSeats run
type AssignSeatsOptions struct {
	InputPath string

	// OutputPath defaults to a timestamped workbook next to the input
	OutputPath string

	// Workers is the number of dates allocated concurrently; 0 means one per CPU
	Workers int

	// DryRun skips persisting the run
	DryRun bool
}

// AssignSeatsResult contains the allocation results
type AssignSeatsResult struct {
	// RunID is empty when the run was not persisted
	RunID      string
	OutputPath string
	Result     *allocator.Result
	Report     *verification.Report
	DataErrors []*model.RecordError
	Elapsed    time.Duration
	Persisted  bool
}

// AssignSeats reads a roster, allocates seats for every date in it, writes the output
// table and stores the run. store and recorder may be nil.
func AssignSeats(
	ctx context.Context,
	store AssignSeatsStore,
	files RosterFiles,
	recorder *metrics.Recorder,
	cfg *config.Config,
	logger *zap.Logger,
	opts AssignSeatsOptions,
) (*AssignSeatsResult, error) {
	logger.Debug("Starting assignSeats",
		zap.String("input", opts.InputPath),
		zap.Int("workers", opts.Workers),
		zap.Bool("dry_run", opts.DryRun))

	// Step 1: Read and parse the roster
	raws, err := files.ReadRecords(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	logger.Debug("Read roster", zap.Int("records", len(raws)))

	order, err := cfg.Seating.PriorityOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve queue priority: %w", err)
	}
	parsed := model.ParseRecords(raws, model.NewQueueSet(order...))

	dataErrors := collectDataErrors(parsed)
	for _, recordErr := range dataErrors {
		logger.Warn("Skipping record", zap.Int("row", recordErr.Row), zap.String("agent_id", recordErr.AgentID),
			zap.String("field", recordErr.Field), zap.Error(recordErr.Err))
	}
	if recorder != nil {
		recorder.ObserveParse(parsed)
	}

	// Step 2: Build the engine configuration for the roster's dates
	dates := horizonDates(parsed)
	logger.Debug("Resolved horizon", zap.Strings("dates", dates))

	engineCfg, err := cfg.Seating.EngineConfig(dates, opts.Workers, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine config: %w", err)
	}

	// Step 3: Allocate
	start := time.Now()
	result, err := allocator.Run(ctx, parsed, engineCfg)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}
	elapsed := time.Since(start)

	if recorder != nil {
		recorder.ObserveResult(result, elapsed)
	}
	for _, verr := range result.ValidationErrors {
		logger.Error("Seat invariant violated",
			zap.String("date", verr.Date),
			zap.Int("seat", verr.Seat),
			zap.String("criterion", verr.CriterionName),
			zap.String("description", verr.Description))
	}

	report := verification.Build(result.Assignments, verification.Options{
		Queues: order,
		Grace:  cfg.Seating.OccupancyGrace,
	})

	// Step 4: Write the output table
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = workbook.OutputFileName(opts.InputPath, start)
	}
	if err := files.WriteAssignments(outputPath, result.Assignments, engineCfg.Catalog); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("Wrote seating arrangement", zap.String("path", outputPath))

	res := &AssignSeatsResult{
		OutputPath: outputPath,
		Result:     result,
		Report:     report,
		DataErrors: dataErrors,
		Elapsed:    elapsed,
	}

	// Step 5: Persist
	if opts.DryRun || store == nil {
		logger.Debug("Skipping persistence", zap.Bool("dry_run", opts.DryRun), zap.Bool("has_store", store != nil))
		return res, nil
	}

	counts := result.Counts()
	run := &db.SeatingRun{
		ID:              uuid.New().String(),
		CreatedAt:       start.UTC(),
		InputFile:       opts.InputPath,
		RecordCount:     len(result.Assignments),
		AssignedCount:   counts[allocator.OutcomeAssigned],
		UnassignedCount: counts[allocator.OutcomeUnassigned],
		DataErrorCount:  counts[allocator.OutcomeDataError],
		Success:         result.Success(),
	}
	if err := store.SaveRun(ctx, run, toSeatAssignments(run.ID, result.Assignments)); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	logger.Info("Saved run", zap.String("run_id", run.ID), zap.Int("records", run.RecordCount))

	res.RunID = run.ID
	res.Persisted = true
	return res, nil
}
