package services

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/internal/config"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// AreaSummary describes one configured area
type AreaSummary struct {
	Name     string
	First    int
	Last     int
	Capacity int
	Reserved []int
}

// ListSeatsResult is the configured floor plan, optionally for a single date
type ListSeatsResult struct {
	Areas []AreaSummary

	// Date and OverrideReserved are set when a date was requested
	Date             string
	OverrideReserved []int
}

// ListSeats summarises the seat catalog. When date is set, the seats reserved on that
// date by overrides are included.
func ListSeats(cfg *config.Config, logger *zap.Logger, date string) (*ListSeatsResult, error) {
	cat, err := cfg.Seating.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to build seat catalog: %w", err)
	}

	result := &ListSeatsResult{}
	for _, r := range cat.Ranges() {
		summary := AreaSummary{Name: r.Name, First: r.First, Last: r.Last, Capacity: cat.Capacity(r.Name)}
		for _, seat := range cat.AreaSeats(r.Name) {
			if seat.Reserved {
				summary.Reserved = append(summary.Reserved, seat.Number)
			}
		}
		result.Areas = append(result.Areas, summary)
	}

	if date == "" {
		return result, nil
	}

	normalized, err := model.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	result.Date = normalized

	reserved := make(map[int]bool)
	for i, o := range cfg.Seating.Overrides {
		matched, err := config.OverrideDates(o.RRule, []string{normalized})
		if err != nil {
			return nil, fmt.Errorf("override %d: %w", i, err)
		}
		if !matched[normalized] {
			continue
		}
		logger.Debug("Override applies", zap.Int("index", i), zap.String("date", normalized))
		for _, seat := range o.ReservedSeats {
			if !cat.IsReserved(seat) {
				reserved[seat] = true
			}
		}
	}
	for seat := range reserved {
		result.OverrideReserved = append(result.OverrideReserved, seat)
	}
	sort.Ints(result.OverrideReserved)
	return result, nil
}
