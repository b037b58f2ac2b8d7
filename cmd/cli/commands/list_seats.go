package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-planner/pkg/core/services"
)

// ListSeatsCmd creates the listSeats command
func ListSeatsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSeats [date]",
		Short: "Show the configured floor plan, with override reservations for a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var date string
			if len(args) > 0 {
				date = args[0]
			}

			result, err := services.ListSeats(app.Cfg, app.Logger, date)
			if err != nil {
				return err
			}

			nameWidth := 10
			for _, area := range result.Areas {
				if len(area.Name) > nameWidth {
					nameWidth = len(area.Name)
				}
			}

			fmt.Printf("\n%-*s  %-9s  %-8s  %s\n", nameWidth, "Area", "Seats", "Capacity", "Reserved")
			fmt.Println(strings.Repeat("-", nameWidth+40))
			for _, area := range result.Areas {
				fmt.Printf("%-*s  %-9s  %-8d  %s\n", nameWidth, area.Name,
					fmt.Sprintf("%d-%d", area.First, area.Last), area.Capacity, joinInts(area.Reserved))
			}

			if result.Date != "" {
				if len(result.OverrideReserved) == 0 {
					fmt.Printf("\nNo override reservations on %s\n", result.Date)
				} else {
					fmt.Printf("\nAlso reserved on %s: %s\n", result.Date, joinInts(result.OverrideReserved))
				}
			}
			fmt.Println()
			return nil
		},
	}
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
