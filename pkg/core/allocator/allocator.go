package allocator

import (
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// Allocator runs one date's seating pass with configurable criteria
type Allocator struct {
	criteria []Criterion
	state    *DayState
	config   *EngineConfig
}

// AllocateDay seats one date's assignable records.
//
// Nesting agents go to their fixed seats first. Everybody else is taken in priority order
// and given the first seat in their candidate list that every criterion accepts, falling
// back to the rest of the pool unless their queue is confined. Agents left without a seat
// are Unassigned, which is not an error.
func AllocateDay(input DayInput, nesting NestingPlacement, config *EngineConfig, criteria []Criterion) *DayOutcome {
	started := time.Now()

	allocator := &Allocator{
		criteria: criteria,
		state:    InitDayState(input, config),
		config:   config,
	}

	assignments := make([]Assignment, len(input.Records))
	positions := make(map[*Candidate]int, len(input.Records))
	var queue []*Candidate

	for i, record := range input.Records {
		candidate := newCandidate(record, config)
		assignments[i] = Assignment{Record: record, Category: candidate.Category}

		if record.IsNesting() {
			assignments[i] = allocator.placeNesting(candidate, nesting, assignments[i])
			continue
		}

		positions[candidate] = i
		queue = append(queue, candidate)
	}

	SortByPriority(queue, config.QueueSet())

	// Main allocation loop
	for _, candidate := range queue {
		i := positions[candidate]

		seat, ok := allocator.findSeat(candidate)
		if !ok {
			assignments[i].Outcome = OutcomeUnassigned
			assignments[i].Reason = ReasonNoCompatibleSeat
			continue
		}

		allocator.claimSeat(candidate, seat, false)
		assignments[i] = assigned(assignments[i], seat)
	}

	outcome := &DayOutcome{
		State:       allocator.state,
		Assignments: assignments,
		Elapsed:     time.Since(started),
	}

	config.Logger.Debug("Allocated day",
		zap.String("date", input.Date),
		zap.Int("headcount", allocator.state.Headcount),
		zap.Int("pool_size", len(allocator.state.Pool)),
		zap.Int("seated", allocator.state.SeatedCount()),
		zap.Bool("overflow_area_open", allocator.state.OverflowAreaOpen),
		zap.Duration("elapsed", outcome.Elapsed))

	return outcome
}

// placeNesting puts a nesting agent on their fixed seat
func (a *Allocator) placeNesting(candidate *Candidate, nesting NestingPlacement, assignment Assignment) Assignment {
	placement, ok := nesting[candidate.Record.AgentID]
	if !ok {
		assignment.Outcome = OutcomeUnassigned
		assignment.Reason = ReasonNestingCapacityExhausted
		return assignment
	}

	seat, ok := a.config.Catalog.Seat(placement.Seat)
	if !ok || !a.state.InPool(seat.Number) || len(a.state.Occupancy[seat.Number]) > 0 {
		assignment.Outcome = OutcomeUnassigned
		assignment.Reason = ReasonNestingSeatUnavailable
		return assignment
	}

	a.claimSeat(candidate, seat, true)
	return assigned(assignment, seat)
}

// findSeat searches the candidate list, then the rest of the pool
func (a *Allocator) findSeat(candidate *Candidate) (catalog.Seat, bool) {
	tried := make(map[int]bool)

	for _, seat := range a.candidateSeats(candidate.Record.Queue) {
		tried[seat.Number] = true
		if IsSeatValidForCandidate(a.state, candidate, seat, a.criteria) {
			return seat, true
		}
	}

	if rule := a.config.rule(candidate.Record.Queue); rule != nil && rule.Confined {
		return catalog.Seat{}, false
	}

	for _, seat := range a.deprioritizeOverflow(a.state.Pool, candidate.Record.Queue) {
		if tried[seat.Number] {
			continue
		}
		if IsSeatValidForCandidate(a.state, candidate, seat, a.criteria) {
			return seat, true
		}
	}

	return catalog.Seat{}, false
}

// candidateSeats returns the seats a queue searches first, in order.
//
// Queues with preferred areas search those areas in preference order, other queues search
// the whole pool. Overflow areas of other queues go last. A queue with an unmet overflow
// quota searches its overflow area first, and after the quota is met, last.
func (a *Allocator) candidateSeats(q model.Queue) []catalog.Seat {
	var seats []catalog.Seat

	rule := a.config.rule(q)
	if rule != nil && len(rule.PreferredAreas) > 0 {
		for _, area := range rule.PreferredAreas {
			seats = append(seats, a.state.poolSeatsIn(area)...)
		}
	} else {
		seats = append(seats, a.state.Pool...)
	}

	seats = a.deprioritizeOverflow(seats, q)

	overflow, ok := a.state.overflow[q]
	if !ok {
		return seats
	}

	var own, rest []catalog.Seat
	for _, seat := range seats {
		if seat.Area != overflow.rule.Area {
			rest = append(rest, seat)
		}
	}
	own = a.state.poolSeatsIn(overflow.rule.Area)

	if overflow.unmet() {
		return append(own, rest...)
	}
	return append(rest, own...)
}

// deprioritizeOverflow moves seats in other queues' active overflow areas to the end,
// keeping the relative order of both parts
func (a *Allocator) deprioritizeOverflow(seats []catalog.Seat, q model.Queue) []catalog.Seat {
	others := make(map[string]bool)
	for owner, overflow := range a.state.overflow {
		if owner != q {
			others[overflow.rule.Area] = true
		}
	}
	if len(others) == 0 {
		return seats
	}

	ordered := make([]catalog.Seat, 0, len(seats))
	var last []catalog.Seat
	for _, seat := range seats {
		if others[seat.Area] {
			last = append(last, seat)
			continue
		}
		ordered = append(ordered, seat)
	}
	return append(ordered, last...)
}

// claimSeat records an occupancy entry and updates overflow progress
func (a *Allocator) claimSeat(candidate *Candidate, seat catalog.Seat, nesting bool) {
	a.state.Occupancy[seat.Number] = append(a.state.Occupancy[seat.Number], Occupancy{
		Interval: candidate.Interval,
		Category: candidate.Category,
		AgentID:  candidate.Record.AgentID,
		Queue:    candidate.Record.Queue,
		Reusable: candidate.Reusable && !nesting,
		Nesting:  nesting,
	})

	if nesting {
		return
	}
	if overflow, ok := a.state.overflow[candidate.Record.Queue]; ok && seat.Area == overflow.rule.Area {
		overflow.count++
	}
}

func assigned(assignment Assignment, seat catalog.Seat) Assignment {
	number := seat.Number
	area := seat.Area
	assignment.Seat = &number
	assignment.Area = &area
	assignment.Outcome = OutcomeAssigned
	assignment.Reason = ""
	return assignment
}
