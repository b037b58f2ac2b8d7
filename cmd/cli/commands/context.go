package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/internal/config"
	"github.com/jakechorley/seat-planner/pkg/db"
	"github.com/jakechorley/seat-planner/pkg/metrics"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg *config.Config

	// Database is nil when no databaseURL is configured
	Database db.Database

	Recorder *metrics.Recorder
	Logger   *zap.Logger
	Ctx      context.Context
	Env      string
}
