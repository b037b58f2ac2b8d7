package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorPlan() []AreaRange {
	return []AreaRange{
		{Name: "OPS1-A", First: 1, Last: 12},
		{Name: "OPS2", First: 48, Last: 61},
		{Name: "OPS3", First: 62, Last: 69},
	}
}

func TestNew_Valid(t *testing.T) {
	c, err := New(floorPlan(), []int{61})
	require.NoError(t, err)

	assert.Equal(t, []string{"OPS1-A", "OPS2", "OPS3"}, c.Areas())
	assert.True(t, c.IsReserved(61))
	assert.False(t, c.IsReserved(60))
	assert.False(t, c.IsReserved(999))

	seat, ok := c.Seat(50)
	require.True(t, ok)
	assert.Equal(t, "OPS2", seat.Area)

	_, ok = c.Seat(40)
	assert.False(t, ok)

	assert.Equal(t, 14, len(c.AreaSeats("OPS2")))
	assert.Equal(t, 13, c.Capacity("OPS2"))
	assert.Equal(t, 8, c.Capacity("OPS3"))
	assert.Equal(t, 0, c.Capacity("TRN"))
	assert.Equal(t, 34, len(c.Seats()))
	assert.Equal(t, 1, c.AreaOrder("OPS2"))
	assert.Equal(t, -1, c.AreaOrder("TRN"))
}

func TestNew_SeatsFollowAreaOrder(t *testing.T) {
	c, err := New([]AreaRange{
		{Name: "High", First: 10, Last: 11},
		{Name: "Low", First: 1, Last: 2},
	}, nil)
	require.NoError(t, err)

	seats := c.Seats()
	numbers := []int{}
	for _, s := range seats {
		numbers = append(numbers, s.Number)
	}
	assert.Equal(t, []int{10, 11, 1, 2}, numbers)
	assert.Equal(t, []int{1, 2, 10, 11}, c.SeatNumbers())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		areas    []AreaRange
		reserved []int
	}{
		{"no areas", nil, nil},
		{"empty name", []AreaRange{{Name: " ", First: 1, Last: 2}}, nil},
		{"duplicate name", []AreaRange{{Name: "A", First: 1, Last: 2}, {Name: "A", First: 3, Last: 4}}, nil},
		{"inverted range", []AreaRange{{Name: "A", First: 5, Last: 2}}, nil},
		{"zero seat", []AreaRange{{Name: "A", First: 0, Last: 2}}, nil},
		{"overlap", []AreaRange{{Name: "A", First: 1, Last: 5}, {Name: "B", First: 5, Last: 8}}, nil},
		{"reserved outside", []AreaRange{{Name: "A", First: 1, Last: 5}}, []int{9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.areas, tt.reserved)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}
