package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/seat-planner/pkg/utils"
)

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored Google token for this environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := utils.DefaultTokenStore()
			if err != nil {
				return err
			}
			if err := store.Delete(app.Env); err != nil {
				return fmt.Errorf("failed to delete token: %w", err)
			}
			utils.ClearToken()

			fmt.Println("✓ Token removed, the next publish will ask for authorization")
			return nil
		},
	}
}
