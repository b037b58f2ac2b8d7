package allocator

import (
	"slices"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// DayInput is one date's share of the horizon
type DayInput struct {
	Date string

	// Records are the assignable records for the date
	Records []model.ShiftRecord

	// TrainingPresent is true if anyone on the date has status Training
	TrainingPresent bool
}

// InitDayState builds the seat pool and overflow quotas for a date.
//
// Pool rules:
//   - Seats reserved permanently or by an override for the date are dropped
//   - Low headcount seats are dropped when headcount <= LowHeadcountThreshold
//   - The overflow area is kept only when headcount > OverflowAreaThreshold and nobody is in training
//
// Overflow quotas are only created when the overflow area has seats in today's pool.
func InitDayState(input DayInput, config *EngineConfig) *DayState {
	state := &DayState{
		Date:          input.Date,
		Headcount:     len(input.Records),
		Occupancy:     make(map[int][]Occupancy),
		ReservedToday: config.reservedOn(input.Date),
		inPool:        make(map[int]bool),
		overflow:      make(map[model.Queue]*overflowState),
		config:        config,
	}

	headcount := config.Headcount
	lowHeadcount := state.Headcount <= headcount.LowHeadcountThreshold
	state.OverflowAreaOpen = headcount.OverflowArea != "" &&
		state.Headcount > headcount.OverflowAreaThreshold &&
		!input.TrainingPresent

	for _, seat := range config.Catalog.Seats() {
		if state.ReservedToday[seat.Number] {
			continue
		}
		if lowHeadcount && slices.Contains(headcount.LowHeadcountSeats, seat.Number) {
			continue
		}
		if headcount.OverflowArea != "" && seat.Area == headcount.OverflowArea && !state.OverflowAreaOpen {
			continue
		}
		state.Pool = append(state.Pool, seat)
		state.inPool[seat.Number] = true
	}

	// A queue's headcount includes its nesting agents even though they never overflow
	queueCounts := make(map[model.Queue]int)
	for _, record := range input.Records {
		queueCounts[record.Queue]++
	}

	for i := range config.Queues {
		rule := &config.Queues[i]
		if rule.Overflow == nil {
			continue
		}
		target := rule.Overflow.Target(queueCounts[rule.Queue])
		if target == 0 || len(state.poolSeatsIn(rule.Overflow.Area)) == 0 {
			continue
		}
		state.overflow[rule.Queue] = &overflowState{rule: rule.Overflow, target: target}
	}

	return state
}

// poolSeatsIn returns today's pool seats in an area, ascending
func (s *DayState) poolSeatsIn(area string) []catalog.Seat {
	var seats []catalog.Seat
	for _, seat := range s.Pool {
		if seat.Area == area {
			seats = append(seats, seat)
		}
	}
	return seats
}
