package allocator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

var horizonDates = []string{"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07"}

func horizonConfig(t *testing.T, workers int) *EngineConfig {
	return newTestConfig(t,
		[]catalog.AreaRange{
			{Name: "OPS1-A", First: 1, Last: 12},
			{Name: "OPS1-D", First: 25, Last: 39},
			{Name: "OPS2", First: 48, Last: 61},
			{Name: "OPS3", First: 62, Last: 69},
		},
		[]int{61},
		[]QueueRule{
			{
				Queue:          "IBC Support",
				PreferredAreas: []string{"OPS2"},
				Overflow:       &OverflowRule{Area: "OPS3", Threshold: 13, Minimum: 3, ScaledUpTo: 16},
			},
			{Queue: "BNS"},
			{Queue: "Customer Support"},
		},
		func(c *EngineConfig) {
			c.NestingAreas = []string{"OPS1-A", "OPS1-D"}
			c.Workers = workers
		})
}

func horizonRecords() []model.ParsedRecord {
	var records []model.ParsedRecord
	row := 1
	add := func(r model.ShiftRecord, err *model.RecordError) {
		row++
		r.Row = row
		records = append(records, model.ParsedRecord{Record: r, Err: err})
	}

	for d, date := range horizonDates {
		for i := 0; i < 15+d; i++ {
			start := 5 + (i % 3)
			if i%2 == 1 {
				start = 15
			}
			add(onDate(shift(fmt.Sprintf("ibc%02d", i), "IBC Support", start, (start+9)%24), date), nil)
		}
		for i := 0; i < 20; i++ {
			add(onDate(shift(fmt.Sprintf("cs%02d", i), "Customer Support", 6+(i%6), 22), date), nil)
		}
		for i := 0; i < 6; i++ {
			add(onDate(nestingShift(fmt.Sprintf("nest%02d", i), "BNS", 9, 18), date), nil)
		}
		add(onDate(shift("night", "BNS", 22, 6), date), nil)

		vacation := onDate(shift("vac", "BNS", 9, 17), date)
		vacation.Status = model.StatusVacation
		add(vacation, nil)
	}

	add(model.ShiftRecord{AgentID: "broken", Date: horizonDates[0]},
		&model.RecordError{AgentID: "broken", Field: "Start", Err: model.ErrInvalidTime})

	return records
}

func TestRun_IndependentOfWorkerCount(t *testing.T) {
	records := horizonRecords()

	sequential, err := Run(context.Background(), records, horizonConfig(t, 1))
	require.NoError(t, err)
	parallel, err := Run(context.Background(), records, horizonConfig(t, 8))
	require.NoError(t, err)
	again, err := Run(context.Background(), records, horizonConfig(t, 3))
	require.NoError(t, err)

	assert.Equal(t, sequential.Assignments, parallel.Assignments)
	assert.Equal(t, sequential.Assignments, again.Assignments)
	assert.Equal(t, sequential.Dates, parallel.Dates)
	assert.Equal(t, sequential.Nesting, parallel.Nesting)
}

func TestRun_OutcomesAndInvariants(t *testing.T) {
	records := horizonRecords()
	config := horizonConfig(t, 4)

	result, err := Run(context.Background(), records, config)
	require.NoError(t, err)
	require.Len(t, result.Assignments, len(records))

	assert.True(t, result.Success(), "validation errors: %v", result.ValidationErrors)
	assert.Equal(t, horizonDates, result.Dates)

	// Input order is preserved
	for i, a := range result.Assignments {
		assert.Equal(t, records[i].Record.Row, a.Record.Row)
	}

	nestingSeats := map[string]int{}
	for _, a := range result.Assignments {
		switch {
		case a.Record.AgentID == "broken":
			assert.Equal(t, OutcomeDataError, a.Outcome)
			assert.NotEmpty(t, a.Reason)
		case a.Record.AgentID == "vac":
			assert.Equal(t, OutcomeNotScheduled, a.Outcome)
		case a.IsSeated():
			assert.False(t, config.Catalog.IsReserved(*a.Seat), "reserved seat %d assigned", *a.Seat)
		}

		if a.Record.IsNesting() {
			seat := seatOf(t, a)
			if previous, ok := nestingSeats[a.Record.AgentID]; ok {
				assert.Equal(t, previous, seat, "nesting agent %s moved", a.Record.AgentID)
			}
			nestingSeats[a.Record.AgentID] = seat
		}
	}
	assert.Len(t, nestingSeats, 6)

	// No seat holds two overlapping entries on any date
	for _, day := range result.Days {
		for seat, entries := range day.State.Occupancy {
			for i := range entries {
				for j := i + 1; j < len(entries); j++ {
					assert.False(t, Overlaps(entries[i].Interval, entries[j].Interval),
						"seat %d on %s", seat, day.State.Date)
				}
			}
		}
	}

	// Overflow quota met on every date
	for _, day := range result.Days {
		target, placed := day.State.OverflowTarget("IBC Support")
		assert.GreaterOrEqual(t, target, 3, day.State.Date)
		assert.Equal(t, target, placed, day.State.Date)
	}

	counts := result.Counts()
	assert.Equal(t, 1, counts[OutcomeDataError])
	assert.Equal(t, len(horizonDates), counts[OutcomeNotScheduled])
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, horizonRecords(), horizonConfig(t, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Empty(t *testing.T) {
	result, err := Run(context.Background(), nil, horizonConfig(t, 2))
	require.NoError(t, err)
	assert.Empty(t, result.Assignments)
	assert.Empty(t, result.Dates)
	assert.True(t, result.Success())
}
