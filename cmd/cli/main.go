package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/cmd/cli/commands"
	"github.com/jakechorley/seat-planner/internal/config"
	"github.com/jakechorley/seat-planner/pkg/metrics"
	"github.com/jakechorley/seat-planner/pkg/postgres"
	"github.com/jakechorley/seat-planner/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
	pgDB    *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seat-planner",
		Short: "Seat Planner CLI - Assign contact center seats from shift rosters",
		Long:  `A CLI tool for assigning workstation seats to scheduled agents, verifying seating files, and publishing runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logFlags(cmd.Flags())
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pgDB != nil {
				pgDB.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (selects seat_planner_config.<env>.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")

	rootCmd.AddCommand(commands.AssignSeatsCmd(app))
	rootCmd.AddCommand(commands.VerifyCmd(app))
	rootCmd.AddCommand(commands.ListSeatsCmd(app))
	rootCmd.AddCommand(commands.ListRunsCmd(app))
	rootCmd.AddCommand(commands.PublishSeatingCmd(app))
	rootCmd.AddCommand(commands.LogoutCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// pendingFlags holds the flags set on the command line until the logger exists
var pendingFlags []zap.Field

func logFlags(flags *pflag.FlagSet) {
	flags.Visit(func(flag *pflag.Flag) {
		pendingFlags = append(pendingFlags, zap.String("flag_"+flag.Name, flag.Value.String()))
	})
}

// initApp sets up logger, config, metrics and the optional database
func initApp() error {
	var err error
	app.Ctx = context.Background()
	app.Env = env

	// Initialize logger
	var logPath string
	app.Logger, logPath, err = logging.InitLogger(env, logging.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Debug("Starting application", zap.String("log_file", logPath))
	if len(pendingFlags) > 0 {
		app.Logger.Debug("Command line flags", pendingFlags...)
	}

	// Load configuration
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("areas", len(app.Cfg.Seating.Areas)),
		zap.Int("queues", len(app.Cfg.Seating.Queues)))

	app.Recorder = metrics.NewRecorder()

	// Database is optional; without it runs are only written to files
	if app.Cfg.DatabaseURL == "" {
		app.Logger.Debug("No database configured")
		return nil
	}

	app.Logger.Debug("Connecting to database")
	pgDB, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pgDB.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = pgDB
	app.Logger.Debug("Database initialized successfully")

	return nil
}
