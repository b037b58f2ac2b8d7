package allocator

import (
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// span is a half-open range of minutes [start, end) within a single day
type span struct {
	start int
	end   int
}

// pieces splits an interval into at most two non-wrapping spans
func pieces(i model.Interval) []span {
	if i.IsOvernight() {
		return []span{
			{start: int(i.Start), end: model.MinutesPerDay},
			{start: 0, end: int(i.Stop)},
		}
	}
	return []span{{start: int(i.Start), end: int(i.Stop)}}
}

// Overlaps reports whether two shift intervals share at least one minute on the daily
// clock. Overnight intervals are split at midnight and every pair of pieces is checked
// with the half-open test, so two overnight shifts always overlap.
func Overlaps(a, b model.Interval) bool {
	for _, pa := range pieces(a) {
		for _, pb := range pieces(b) {
			if pa.start < pb.end && pb.start < pa.end {
				return true
			}
		}
	}
	return false
}

// ActiveAt reports whether an interval covers the given minute, counting the agent as
// present from grace minutes before the start until grace minutes after the stop.
// Only used for floor occupancy figures, never for seat sharing.
func ActiveAt(i model.Interval, minute model.TimeOfDay, grace int) bool {
	start := int(i.Start) - grace
	length := i.Duration() + 2*grace
	if length >= model.MinutesPerDay {
		return true
	}
	offset := ((int(minute)-start)%model.MinutesPerDay + model.MinutesPerDay) % model.MinutesPerDay
	return offset < length
}
