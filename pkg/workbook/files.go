package workbook

import (
	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// Files reads and writes roster tables on the local file system
type Files struct{}

func (Files) ReadRecords(path string) ([]model.RawRecord, error) {
	return ReadRecords(path)
}

func (Files) ReadAssignments(path string, queues model.QueueSet, bounds allocator.CategoryBounds) ([]allocator.Assignment, error) {
	return ReadAssignments(path, queues, bounds)
}

func (Files) WriteAssignments(path string, assignments []allocator.Assignment, cat *catalog.Catalog) error {
	return WriteAssignments(path, assignments, cat)
}
