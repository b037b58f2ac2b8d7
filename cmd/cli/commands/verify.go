package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/pkg/core/services"
	"github.com/jakechorley/seat-planner/pkg/core/verification"
	"github.com/jakechorley/seat-planner/pkg/workbook"
)

// VerifyCmd creates the verify command
func VerifyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <seating_file>",
		Short: "Print the verification report for a written seating file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("verify command", zap.String("path", args[0]))

			report, err := services.VerifySeating(app.Ctx, workbook.Files{}, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			if err := verification.Render(os.Stdout, report); err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}
			return nil
		},
	}
}
