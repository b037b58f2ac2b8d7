package allocator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

const testDate = "2025-03-03"

var testBounds = CategoryBounds{
	MorningStart: model.NewTimeOfDay(5, 0),
	MorningEnd:   model.NewTimeOfDay(11, 0),
	NightStart:   model.NewTimeOfDay(14, 0),
}

func tm(hour, minute int) model.TimeOfDay {
	return model.NewTimeOfDay(hour, minute)
}

func iv(startHour, stopHour int) model.Interval {
	return model.Interval{Start: tm(startHour, 0), Stop: tm(stopHour, 0)}
}

var rowCounter int

func shift(id string, queue model.Queue, startHour, stopHour int) model.ShiftRecord {
	rowCounter++
	return model.ShiftRecord{
		Row:     rowCounter,
		AgentID: id,
		Name:    "Agent " + id,
		Date:    testDate,
		Start:   tm(startHour, 0),
		Stop:    tm(stopHour, 0),
		Status:  model.StatusRegular,
		Queue:   queue,
	}
}

func nestingShift(id string, queue model.Queue, startHour, stopHour int) model.ShiftRecord {
	r := shift(id, queue, startHour, stopHour)
	r.Status = model.StatusNesting
	return r
}

func onDate(r model.ShiftRecord, date string) model.ShiftRecord {
	r.Date = date
	return r
}

func newTestConfig(t *testing.T, areas []catalog.AreaRange, reserved []int, queues []QueueRule, mutate ...func(*EngineConfig)) *EngineConfig {
	t.Helper()

	cat, err := catalog.New(areas, reserved)
	require.NoError(t, err)

	c := EngineConfig{
		Catalog:        cat,
		Queues:         queues,
		Categories:     testBounds,
		ReusableCutoff: tm(16, 0),
		Workers:        1,
	}
	for _, m := range mutate {
		m(&c)
	}

	config, err := NewEngineConfig(c)
	require.NoError(t, err)
	return config
}

func singleSeatConfig(t *testing.T) *EngineConfig {
	return newTestConfig(t,
		[]catalog.AreaRange{{Name: "A", First: 1, Last: 1}},
		nil,
		[]QueueRule{{Queue: "Q"}})
}

func allocate(config *EngineConfig, records ...model.ShiftRecord) *DayOutcome {
	return AllocateDay(DayInput{Date: testDate, Records: records}, NestingPlacement{}, config, DefaultCriteria())
}

func seatOf(t *testing.T, a Assignment) int {
	t.Helper()
	require.Equal(t, OutcomeAssigned, a.Outcome, "agent %s: %s", a.Record.AgentID, a.Reason)
	require.NotNil(t, a.Seat)
	return *a.Seat
}

func ids(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%02d", prefix, i+1)
	}
	return out
}
