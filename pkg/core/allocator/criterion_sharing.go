package allocator

import (
	"fmt"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
)

// SharingCriterion decides when two shifts may use the same seat on the same day.
//
// Validity:
//   - An empty seat is always valid
//   - A seat with MaxOccupantsPerSeat entries, or any nesting entry, is invalid
//   - The candidate must not overlap any entry on the seat
//   - Whenever a morning and a night shift meet, the morning one must be reusable
//
// Validation:
//   - Flags overlapping entries and seats over the occupant limit
type SharingCriterion struct{}

// NewSharingCriterion creates a new SharingCriterion
func NewSharingCriterion() *SharingCriterion {
	return &SharingCriterion{}
}

func (c *SharingCriterion) Name() string {
	return "Sharing"
}

func (c *SharingCriterion) IsSeatValid(state *DayState, candidate *Candidate, seat catalog.Seat) bool {
	entries := state.Occupancy[seat.Number]
	if len(entries) == 0 {
		return true
	}
	if len(entries) >= state.config.MaxOccupantsPerSeat {
		return false
	}

	for _, entry := range entries {
		if entry.Nesting {
			return false
		}
		if Overlaps(entry.Interval, candidate.Interval) {
			return false
		}
		if entry.Category == CategoryMorning && candidate.Category == CategoryNight && !entry.Reusable {
			return false
		}
		if candidate.Category == CategoryMorning && entry.Category == CategoryNight && !candidate.Reusable {
			return false
		}
	}

	return true
}

func (c *SharingCriterion) ValidateDayState(state *DayState) []SeatValidationError {
	var errors []SeatValidationError

	for _, seat := range sortedSeats(state) {
		entries := state.Occupancy[seat]

		if len(entries) > state.config.MaxOccupantsPerSeat {
			errors = append(errors, SeatValidationError{
				Date:          state.Date,
				Seat:          seat,
				CriterionName: c.Name(),
				Description: fmt.Sprintf("Seat has %d occupants but the limit is %d",
					len(entries), state.config.MaxOccupantsPerSeat),
			})
		}

		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				if Overlaps(entries[i].Interval, entries[j].Interval) {
					errors = append(errors, SeatValidationError{
						Date:          state.Date,
						Seat:          seat,
						CriterionName: c.Name(),
						Description: fmt.Sprintf("Agents %s (%s) and %s (%s) overlap",
							entries[i].AgentID, entries[i].Interval, entries[j].AgentID, entries[j].Interval),
					})
				}
			}
		}

		if len(entries) > 1 {
			for _, entry := range entries {
				if entry.Nesting {
					errors = append(errors, SeatValidationError{
						Date:          state.Date,
						Seat:          seat,
						CriterionName: c.Name(),
						Description:   fmt.Sprintf("Nesting agent %s shares a seat", entry.AgentID),
					})
				}
			}
		}
	}

	return errors
}
