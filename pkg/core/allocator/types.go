package allocator

import (
	"sort"
	"time"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// Category is the shift category derived from the start time
type Category int

const (
	CategoryMorning Category = iota
	CategoryNight
	CategoryOther
)

func (c Category) String() string {
	switch c {
	case CategoryMorning:
		return "Morning"
	case CategoryNight:
		return "Night"
	default:
		return "Other"
	}
}

// Outcome is the final result for one input record
type Outcome string

const (
	OutcomeAssigned     Outcome = "Assigned"
	OutcomeUnassigned   Outcome = "Unassigned"
	OutcomeNotScheduled Outcome = "NotScheduled"
	OutcomeDataError    Outcome = "DataError"
)

// IsValid checks if the outcome is one of the known outcomes
func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeAssigned, OutcomeUnassigned, OutcomeNotScheduled, OutcomeDataError:
		return true
	}
	return false
}

// Unassigned reasons
const (
	ReasonNoCompatibleSeat         = "no compatible seat"
	ReasonNestingCapacityExhausted = "nesting capacity exhausted"
	ReasonNestingSeatUnavailable   = "nesting seat unavailable"
)

// Occupancy is one agent's claim on a seat for a date
type Occupancy struct {
	Interval model.Interval
	Category Category
	AgentID  string
	Queue    model.Queue

	// Reusable is true for a morning entry that stops before the reusable cutoff,
	// allowing a night shift to take the seat afterwards
	Reusable bool

	// Nesting entries never share their seat
	Nesting bool
}

// Candidate is an agent looking for a seat
type Candidate struct {
	Record   model.ShiftRecord
	Interval model.Interval
	Category Category
	Reusable bool
}

// Assignment is the final result for one input record
type Assignment struct {
	Record   model.ShiftRecord
	Seat     *int
	Area     *string
	Outcome  Outcome
	Reason   string
	Category Category
}

// IsSeated returns true if the record was given a seat
func (a Assignment) IsSeated() bool {
	return a.Outcome == OutcomeAssigned && a.Seat != nil
}

// overflowState tracks a queue's overflow quota for one day
type overflowState struct {
	rule   *OverflowRule
	target int
	count  int
}

// unmet returns true while the queue must still place agents in the overflow area
func (o *overflowState) unmet() bool {
	return o.count < o.target
}

// DayState is the occupancy state of the floor for one date
type DayState struct {
	Date string

	// Headcount is the number of assignable records on the date, nesting included
	Headcount int

	// Pool is the day's seat pool in catalog order
	Pool []catalog.Seat

	// Occupancy holds the entries claimed on each seat
	Occupancy map[int][]Occupancy

	// ReservedToday holds the seats reserved on this date, permanently or by an override
	ReservedToday map[int]bool

	// OverflowAreaOpen is true when the headcount-gated overflow area is in today's pool
	OverflowAreaOpen bool

	inPool   map[int]bool
	overflow map[model.Queue]*overflowState
	config   *EngineConfig
}

// InPool reports whether a seat is available for allocation today
func (s *DayState) InPool(seat int) bool {
	return s.inPool[seat]
}

// OverflowTarget returns the overflow quota and the number placed so far for a queue
func (s *DayState) OverflowTarget(q model.Queue) (target, placed int) {
	o, ok := s.overflow[q]
	if !ok {
		return 0, 0
	}
	return o.target, o.count
}

// OverflowQueues returns the queues with an overflow quota today, sorted by name
func (s *DayState) OverflowQueues() []model.Queue {
	queues := make([]model.Queue, 0, len(s.overflow))
	for q := range s.overflow {
		queues = append(queues, q)
	}
	sort.Slice(queues, func(i, j int) bool { return queues[i] < queues[j] })
	return queues
}

// SeatedCount returns the number of entries on the floor
func (s *DayState) SeatedCount() int {
	count := 0
	for _, entries := range s.Occupancy {
		count += len(entries)
	}
	return count
}

// DayOutcome is the product of one day's allocation pass
type DayOutcome struct {
	State *DayState

	// Assignments are aligned with the records passed to AllocateDay
	Assignments []Assignment

	Elapsed time.Duration
}

// SeatValidationError represents a broken invariant on a seat
type SeatValidationError struct {
	Date          string
	Seat          int
	CriterionName string
	Description   string
}

// Result is the outcome of a whole horizon
type Result struct {
	// Assignments are in original input order
	Assignments []Assignment

	// Dates are the distinct dates that were allocated, ascending
	Dates []string

	// Days are aligned with Dates
	Days []*DayOutcome

	Nesting NestingPlacement

	ValidationErrors []SeatValidationError
}

// Success is true when no invariant was broken
func (r *Result) Success() bool {
	return len(r.ValidationErrors) == 0
}

// Counts returns the number of assignments with each outcome
func (r *Result) Counts() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, a := range r.Assignments {
		counts[a.Outcome]++
	}
	return counts
}
