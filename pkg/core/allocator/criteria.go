package allocator

import "github.com/jakechorley/seat-planner/pkg/core/catalog"

// Criterion defines a seating rule
// Criteria decide which seats an agent may take and check the finished day for violations
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsSeatValid determines if a seat may be given to a candidate
	// This acts as a veto - if ANY criterion returns false, the seat cannot be allocated
	IsSeatValid(state *DayState, candidate *Candidate, seat catalog.Seat) bool

	// ValidateDayState checks if the finished day meets this criterion's requirements
	// Returns a slice of validation errors (empty if all valid)
	ValidateDayState(state *DayState) []SeatValidationError
}

// DefaultCriteria returns the criteria applied by every daily pass
func DefaultCriteria() []Criterion {
	return []Criterion{
		NewAreaCriterion(),
		NewSharingCriterion(),
	}
}

// IsSeatValidForCandidate checks if a seat passes all criteria
func IsSeatValidForCandidate(state *DayState, candidate *Candidate, seat catalog.Seat, criteria []Criterion) bool {
	for _, criterion := range criteria {
		if !criterion.IsSeatValid(state, candidate, seat) {
			return false
		}
	}
	return true
}
