package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/internal/config"
	"github.com/jakechorley/seat-planner/pkg/clients/sheetsclient"
	"github.com/jakechorley/seat-planner/pkg/core/services"
)

var errNoDatabase = errors.New("no database configured - set databaseURL in the config file")

// PublishSeatingCmd creates the publishSeating command
func PublishSeatingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSeating [run_id]",
		Short: "Append a stored run to the configured Google Sheet (defaults to latest run)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) > 0 {
				runID = args[0]
			}

			if app.Database == nil {
				return errNoDatabase
			}

			app.Logger.Debug("publishSeating command", zap.String("run_id", runID))

			oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			result, err := services.PublishSeating(app.Ctx, app.Database, client, app.Cfg, app.Logger, runID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Published run %s\n", result.Run.ID)
			fmt.Printf("Tab:  %s\n", result.Tab)
			fmt.Printf("Rows: %d\n\n", result.RowCount)
			return nil
		},
	}
}
