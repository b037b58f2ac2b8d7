package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
)

func TestNewEngineConfig_Defaults(t *testing.T) {
	config := singleSeatConfig(t)

	assert.Equal(t, DefaultMaxOccupantsPerSeat, config.MaxOccupantsPerSeat)
	assert.Equal(t, 1, config.Workers)
	assert.NotNil(t, config.Logger)
	assert.Equal(t, 1, config.QueueSet().Len())
}

func TestNewEngineConfig_Errors(t *testing.T) {
	cat, err := catalog.New([]catalog.AreaRange{{Name: "A", First: 1, Last: 5}}, nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		config EngineConfig
	}{
		{"no catalog", EngineConfig{Queues: []QueueRule{{Queue: "Q"}}}},
		{"no queues", EngineConfig{Catalog: cat}},
		{"duplicate queue", EngineConfig{Catalog: cat, Queues: []QueueRule{{Queue: "Q"}, {Queue: "Q"}}}},
		{"unknown preferred area", EngineConfig{Catalog: cat, Queues: []QueueRule{{Queue: "Q", PreferredAreas: []string{"B"}}}}},
		{"unknown overflow area", EngineConfig{Catalog: cat, Queues: []QueueRule{{Queue: "Q", Overflow: &OverflowRule{Area: "B"}}}}},
		{"unknown nesting area", EngineConfig{Catalog: cat, Queues: []QueueRule{{Queue: "Q"}}, NestingAreas: []string{"B"}}},
		{"unknown low headcount seat", EngineConfig{Catalog: cat, Queues: []QueueRule{{Queue: "Q"}}, Headcount: HeadcountRule{LowHeadcountSeats: []int{9}}}},
		{"negative occupants", EngineConfig{Catalog: cat, Queues: []QueueRule{{Queue: "Q"}}, MaxOccupantsPerSeat: -1}},
		{"override without rule", EngineConfig{Catalog: cat, Queues: []QueueRule{{Queue: "Q"}}, Overrides: []SeatOverride{{ReservedSeats: []int{1}}}}},
		{"inverted morning", EngineConfig{Catalog: cat, Queues: []QueueRule{{Queue: "Q"}}, Categories: CategoryBounds{MorningStart: tm(11, 0), MorningEnd: tm(5, 0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngineConfig(tt.config)
			assert.Error(t, err)
		})
	}
}
