package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/internal/config"
	"github.com/jakechorley/seat-planner/pkg/core/model"
	"github.com/jakechorley/seat-planner/pkg/core/verification"
)

// VerifySeating re-reads a written seating table and builds the verification report
// from what is actually in it
func VerifySeating(
	ctx context.Context,
	files RosterFiles,
	cfg *config.Config,
	logger *zap.Logger,
	path string,
) (*verification.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger.Debug("Starting verifySeating", zap.String("path", path))

	order, err := cfg.Seating.PriorityOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve queue priority: %w", err)
	}
	bounds, err := cfg.Seating.CategoryBounds()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve shift categories: %w", err)
	}

	assignments, err := files.ReadAssignments(path, model.NewQueueSet(order...), bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to read seating table: %w", err)
	}
	logger.Debug("Read seating table", zap.Int("records", len(assignments)))

	return verification.Build(assignments, verification.Options{
		Queues: order,
		Grace:  cfg.Seating.OccupancyGrace,
	}), nil
}
