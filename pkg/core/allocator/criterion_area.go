package allocator

import (
	"fmt"
	"slices"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
)

// AreaCriterion keeps agents inside today's seat pool and enforces overflow quotas.
//
// Validity:
//   - Returns false if the seat is not in today's pool (reserved, low headcount or gated area)
//   - Returns false for a seat in the queue's preferred areas while its overflow quota is unmet
//
// Validation:
//   - Flags any occupied seat that is reserved today or outside today's pool
type AreaCriterion struct{}

// NewAreaCriterion creates a new AreaCriterion
func NewAreaCriterion() *AreaCriterion {
	return &AreaCriterion{}
}

func (c *AreaCriterion) Name() string {
	return "Area"
}

func (c *AreaCriterion) IsSeatValid(state *DayState, candidate *Candidate, seat catalog.Seat) bool {
	if !state.InPool(seat.Number) {
		return false
	}

	overflow, ok := state.overflow[candidate.Record.Queue]
	if !ok || !overflow.unmet() {
		return true
	}

	rule := state.config.rule(candidate.Record.Queue)
	return !slices.Contains(rule.PreferredAreas, seat.Area)
}

func (c *AreaCriterion) ValidateDayState(state *DayState) []SeatValidationError {
	var errors []SeatValidationError

	for _, seat := range sortedSeats(state) {
		if state.ReservedToday[seat] {
			errors = append(errors, SeatValidationError{
				Date:          state.Date,
				Seat:          seat,
				CriterionName: c.Name(),
				Description:   fmt.Sprintf("Reserved seat has %d occupants", len(state.Occupancy[seat])),
			})
			continue
		}
		if !state.InPool(seat) && !isNestingOnly(state.Occupancy[seat]) {
			errors = append(errors, SeatValidationError{
				Date:          state.Date,
				Seat:          seat,
				CriterionName: c.Name(),
				Description:   "Seat is not in today's pool",
			})
		}
	}

	return errors
}

func isNestingOnly(entries []Occupancy) bool {
	for _, e := range entries {
		if !e.Nesting {
			return false
		}
	}
	return len(entries) > 0
}
