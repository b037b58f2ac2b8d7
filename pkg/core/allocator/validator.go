package allocator

import (
	"fmt"
	"sort"
)

// ValidateDayState validates a finished day against all provided criteria.
// Returns a slice of validation errors for any constraint violations.
// An empty slice indicates the day is valid.
func ValidateDayState(state *DayState, criteria []Criterion) []SeatValidationError {
	var errors []SeatValidationError

	for _, criterion := range criteria {
		errors = append(errors, criterion.ValidateDayState(state)...)
	}

	return errors
}

// ValidateHorizon checks the properties that span dates: every seated nesting agent keeps
// the same seat on every date they work.
func ValidateHorizon(result *Result) []SeatValidationError {
	var errors []SeatValidationError

	first := make(map[string]Assignment)
	for _, a := range result.Assignments {
		if !a.IsSeated() || !a.Record.IsNesting() {
			continue
		}
		previous, seen := first[a.Record.AgentID]
		if !seen {
			first[a.Record.AgentID] = a
			continue
		}
		if *previous.Seat != *a.Seat || *previous.Area != *a.Area {
			errors = append(errors, SeatValidationError{
				Date:          a.Record.Date,
				Seat:          *a.Seat,
				CriterionName: "NestingStability",
				Description: fmt.Sprintf("Nesting agent %s moved from %s seat %d on %s to %s seat %d",
					a.Record.AgentID, *previous.Area, *previous.Seat, previous.Record.Date, *a.Area, *a.Seat),
			})
		}
	}

	return errors
}

// sortedSeats returns the occupied seat numbers of a day in ascending order
func sortedSeats(state *DayState) []int {
	seats := make([]int, 0, len(state.Occupancy))
	for seat, entries := range state.Occupancy {
		if len(entries) > 0 {
			seats = append(seats, seat)
		}
	}
	sort.Ints(seats)
	return seats
}
