package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

func nestingConfig(t *testing.T, mutate ...func(*EngineConfig)) *EngineConfig {
	mutate = append([]func(*EngineConfig){func(c *EngineConfig) {
		c.NestingAreas = []string{"OPS1-A", "OPS1-D"}
	}}, mutate...)

	return newTestConfig(t,
		[]catalog.AreaRange{
			{Name: "OPS1-A", First: 1, Last: 3},
			{Name: "OPS1-D", First: 25, Last: 28},
		},
		nil,
		[]QueueRule{{Queue: "Q"}},
		mutate...)
}

func nestingRecords(agentIDs ...string) []model.ShiftRecord {
	var records []model.ShiftRecord
	for _, id := range agentIDs {
		records = append(records, nestingShift(id, "Q", 9, 17))
	}
	return records
}

func TestResolveNesting_PrimaryAreaWhenItFits(t *testing.T) {
	config := nestingConfig(t)

	placement := ResolveNesting(nestingRecords("N3", "N1"), []string{testDate}, config)

	assert.Equal(t, NestingPlacement{
		"N3": {Area: "OPS1-A", Seat: 1},
		"N1": {Area: "OPS1-A", Seat: 2},
	}, placement)
}

func TestResolveNesting_AlternateAreaForLargeGroup(t *testing.T) {
	config := nestingConfig(t)

	placement := ResolveNesting(nestingRecords("N1", "N2", "N3", "N4"), []string{testDate}, config)

	assert.Len(t, placement, 4)
	assert.Equal(t, Placement{Area: "OPS1-D", Seat: 25}, placement["N1"])
	assert.Equal(t, Placement{Area: "OPS1-D", Seat: 28}, placement["N4"])
}

func TestResolveNesting_SpillsAcrossAreasAndLeavesOverflowUnplaced(t *testing.T) {
	config := nestingConfig(t)

	agents := ids("N", 9)
	placement := ResolveNesting(nestingRecords(agents...), []string{testDate}, config)

	assert.Len(t, placement, 7)
	assert.Equal(t, Placement{Area: "OPS1-A", Seat: 1}, placement["N01"])
	assert.Equal(t, Placement{Area: "OPS1-D", Seat: 25}, placement["N04"])
	assert.NotContains(t, placement, "N08")
	assert.NotContains(t, placement, "N09")
}

func TestResolveNesting_FirstSeenOrderAndDistinctAgents(t *testing.T) {
	config := nestingConfig(t)

	records := []model.ShiftRecord{
		onDate(nestingShift("N2", "Q", 9, 17), "2025-03-03"),
		shift("R1", "Q", 9, 17),
		onDate(nestingShift("N1", "Q", 9, 17), "2025-03-03"),
		onDate(nestingShift("N2", "Q", 9, 17), "2025-03-04"),
	}

	placement := ResolveNesting(records, []string{"2025-03-03", "2025-03-04"}, config)

	assert.Equal(t, NestingPlacement{
		"N2": {Area: "OPS1-A", Seat: 1},
		"N1": {Area: "OPS1-A", Seat: 2},
	}, placement)
}

func TestResolveNesting_SkipsSeatsReservedOnAnyDate(t *testing.T) {
	config := nestingConfig(t, func(c *EngineConfig) {
		c.Overrides = []SeatOverride{{
			AppliesTo:     func(date string) bool { return date == "2025-03-08" },
			ReservedSeats: []int{1},
		}}
	})

	placement := ResolveNesting(nestingRecords("N1"), []string{testDate, "2025-03-08"}, config)
	assert.Equal(t, Placement{Area: "OPS1-A", Seat: 2}, placement["N1"])

	placement = ResolveNesting(nestingRecords("N1"), []string{testDate}, config)
	assert.Equal(t, Placement{Area: "OPS1-A", Seat: 1}, placement["N1"])
}
