package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/services"
	"github.com/jakechorley/seat-planner/pkg/core/verification"
	"github.com/jakechorley/seat-planner/pkg/workbook"
)

// AssignSeatsCmd creates the assignSeats command
func AssignSeatsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignSeats <roster_file>",
		Short: "Assign seats for every date in a roster (.xlsx or .csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			workers, _ := cmd.Flags().GetInt("workers")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("assignSeats command",
				zap.String("input", args[0]),
				zap.String("output", output),
				zap.Bool("dry_run", dryRun))

			opts := services.AssignSeatsOptions{
				InputPath:  args[0],
				OutputPath: output,
				Workers:    workers,
				DryRun:     dryRun,
			}

			// Avoid a typed nil store when no database is configured
			var store services.AssignSeatsStore
			if app.Database != nil {
				store = app.Database
			}

			result, err := services.AssignSeats(app.Ctx, store, workbook.Files{}, app.Recorder, app.Cfg, app.Logger, opts)
			if err != nil {
				return err
			}

			printAssignSummary(result)
			if err := verification.Render(os.Stdout, result.Report); err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}

			if app.Cfg.Metrics != nil && app.Recorder != nil {
				if err := app.Recorder.Push(app.Ctx, app.Cfg.Metrics.PushGatewayURL, app.Cfg.Metrics.Job); err != nil {
					app.Logger.Warn("Failed to push metrics", zap.Error(err))
				}
			}

			if !result.Result.Success() {
				return fmt.Errorf("seating failed validation with %d errors", len(result.Result.ValidationErrors))
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (.xlsx or .csv), defaults to a timestamped file next to the input")
	cmd.Flags().IntP("workers", "w", 0, "Dates allocated concurrently (0 = one per CPU)")
	cmd.Flags().Bool("dry-run", false, "Run without saving to the database")

	return cmd
}

func printAssignSummary(result *services.AssignSeatsResult) {
	counts := result.Result.Counts()

	fmt.Printf("\n✓ Seating complete in %s\n\n", result.Elapsed.Round(time.Millisecond))
	fmt.Printf("Dates:         %d\n", len(result.Result.Dates))
	fmt.Printf("Assigned:      %d\n", counts[allocator.OutcomeAssigned])
	fmt.Printf("Unassigned:    %d\n", counts[allocator.OutcomeUnassigned])
	fmt.Printf("Not scheduled: %d\n", counts[allocator.OutcomeNotScheduled])
	fmt.Printf("Data errors:   %d\n", counts[allocator.OutcomeDataError])
	fmt.Printf("Output:        %s\n", result.OutputPath)
	if result.Persisted {
		fmt.Printf("Run ID:        %s\n", result.RunID)
	}

	for _, day := range result.Result.Days {
		for _, q := range day.State.OverflowQueues() {
			target, placed := day.State.OverflowTarget(q)
			if placed < target {
				fmt.Printf("⚠️  %s: %s placed %d of %d in its overflow area\n", day.State.Date, q, placed, target)
			}
		}
	}

	if len(result.Result.ValidationErrors) > 0 {
		fmt.Printf("\n❌ %d validation errors:\n", len(result.Result.ValidationErrors))
		for _, verr := range result.Result.ValidationErrors {
			fmt.Printf("  %s seat %d [%s]: %s\n", verr.Date, verr.Seat, verr.CriterionName, verr.Description)
		}
	}
	fmt.Println()
}
