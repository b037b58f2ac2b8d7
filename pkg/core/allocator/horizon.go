package allocator

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// Run allocates seats for every date in the records.
//
// Records with data errors and records that are not working are reported but never
// seated. Nesting seats are resolved once for the whole horizon, then each date is
// allocated on its own, possibly concurrently. Assignments come back in input order and
// do not depend on the number of workers.
//
// The context only stops dates that have not started yet.
func Run(ctx context.Context, records []model.ParsedRecord, config *EngineConfig) (*Result, error) {
	result := &Result{
		Assignments: make([]Assignment, len(records)),
	}

	byDate := make(map[string][]int)
	training := make(map[string]bool)
	var assignable []model.ShiftRecord

	for i, parsed := range records {
		record := parsed.Record

		if parsed.Err != nil {
			result.Assignments[i] = Assignment{
				Record:  record,
				Outcome: OutcomeDataError,
				Reason:  parsed.Err.Error(),
			}
			continue
		}

		if record.Status == model.StatusTraining {
			training[record.Date] = true
		}

		if !record.IsAssignable() {
			result.Assignments[i] = Assignment{
				Record:  record,
				Outcome: OutcomeNotScheduled,
				Reason:  notScheduledReason(record),
			}
			continue
		}

		byDate[record.Date] = append(byDate[record.Date], i)
		assignable = append(assignable, record)
	}

	for date := range byDate {
		result.Dates = append(result.Dates, date)
	}
	sort.Strings(result.Dates)

	result.Nesting = ResolveNesting(assignable, result.Dates, config)

	criteria := DefaultCriteria()
	result.Days = make([]*DayOutcome, len(result.Dates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)

	for d, date := range result.Dates {
		input := DayInput{
			Date:            date,
			TrainingPresent: training[date],
		}
		for _, i := range byDate[date] {
			input.Records = append(input.Records, records[i].Record)
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result.Days[d] = AllocateDay(input, result.Nesting, config, criteria)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to allocate seats: %w", err)
	}

	// Merge by date key, back into input order
	for d, date := range result.Dates {
		day := result.Days[d]
		for j, i := range byDate[date] {
			result.Assignments[i] = day.Assignments[j]
		}
		result.ValidationErrors = append(result.ValidationErrors, ValidateDayState(day.State, criteria)...)
	}
	result.ValidationErrors = append(result.ValidationErrors, ValidateHorizon(result)...)

	config.Logger.Info("Seat allocation complete",
		zap.Int("records", len(records)),
		zap.Int("dates", len(result.Dates)),
		zap.Int("nesting_agents", len(result.Nesting)),
		zap.Int("validation_errors", len(result.ValidationErrors)))

	return result, nil
}

func notScheduledReason(record model.ShiftRecord) string {
	if record.Off {
		return "off"
	}
	return "status " + string(record.Status)
}
