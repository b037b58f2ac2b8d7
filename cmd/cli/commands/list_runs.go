package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-planner/pkg/core/services"
)

// ListRunsCmd creates the listRuns command
func ListRunsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRuns",
		Short: "List stored seating runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Database == nil {
				return errNoDatabase
			}

			runs, err := services.ListRuns(app.Ctx, app.Database)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs stored yet.")
				return nil
			}

			fmt.Printf("\n%-36s  %-19s  %7s  %8s  %10s  %6s  %s\n",
				"Run ID", "Created", "Records", "Assigned", "Unassigned", "Errors", "Input")
			for _, run := range runs {
				status := "✓"
				if !run.Success {
					status = "✗"
				}
				fmt.Printf("%-36s  %-19s  %7d  %8d  %10d  %6d  %s %s\n",
					run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					run.RecordCount, run.AssignedCount, run.UnassignedCount, run.DataErrorCount,
					status, run.InputFile)
			}
			fmt.Println()
			return nil
		},
	}
}
