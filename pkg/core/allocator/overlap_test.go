package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/seat-planner/pkg/core/model"
)

func TestOverlaps_DayShiftsMatchHalfOpenTest(t *testing.T) {
	// Exhaustive over whole hours for non-overnight pairs
	for s1 := 0; s1 < 24; s1++ {
		for e1 := s1 + 1; e1 < 24; e1++ {
			for s2 := 0; s2 < 24; s2++ {
				for e2 := s2 + 1; e2 < 24; e2++ {
					expected := s1 < e2 && s2 < e1
					assert.Equal(t, expected, Overlaps(iv(s1, e1), iv(s2, e2)),
						"(%d,%d) vs (%d,%d)", s1, e1, s2, e2)
				}
			}
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     model.Interval
		expected bool
	}{
		{"overnight vs early morning", iv(17, 1), model.Interval{Start: tm(0, 30), Stop: tm(6, 0)}, true},
		{"identical", iv(5, 14), iv(5, 14), true},
		{"back to back", iv(5, 14), iv(14, 23), false},
		{"overnight vs afternoon", iv(22, 6), iv(12, 21), false},
		{"overnight vs evening", iv(22, 6), iv(15, 23), true},
		{"overnight vs morning after", iv(22, 6), iv(6, 14), false},
		{"two overnights", iv(23, 1), iv(20, 0), true},
		{"overnight ending at midnight vs morning", iv(16, 0), iv(5, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.expected, Overlaps(tt.b, tt.a), "overlap is symmetric")
		})
	}
}

func TestActiveAt(t *testing.T) {
	day := iv(5, 14)
	assert.True(t, ActiveAt(day, tm(5, 0), 0))
	assert.False(t, ActiveAt(day, tm(14, 0), 0))
	assert.True(t, ActiveAt(day, tm(14, 0), 30))
	assert.True(t, ActiveAt(day, tm(4, 30), 30))
	assert.False(t, ActiveAt(day, tm(4, 29), 30))

	night := iv(22, 6)
	assert.True(t, ActiveAt(night, tm(23, 30), 0))
	assert.True(t, ActiveAt(night, tm(5, 30), 0))
	assert.False(t, ActiveAt(night, tm(12, 0), 30))
}
