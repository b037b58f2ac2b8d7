package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

func TestObserveParse(t *testing.T) {
	r := NewRecorder()

	r.ObserveParse([]model.ParsedRecord{
		{Record: model.ShiftRecord{AgentID: "A"}},
		{Err: &model.RecordError{Row: 3, Field: "Start", Err: model.ErrInvalidTime}},
		{Err: &model.RecordError{Row: 4, Field: "Queue", Err: model.ErrUnknownQueue}},
		{Err: &model.RecordError{Row: 5, Field: "Start", Err: model.ErrInvalidTime}},
	})

	assert.Equal(t, 4.0, testutil.ToFloat64(r.RecordsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.DataErrorsTotal.WithLabelValues("invalid_time")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.DataErrorsTotal.WithLabelValues("unknown_queue")))
}

func TestObserveResult(t *testing.T) {
	r := NewRecorder()
	seat := 1

	result := &allocator.Result{
		Assignments: []allocator.Assignment{
			{Record: model.ShiftRecord{AgentID: "A", Queue: "BNS"}, Outcome: allocator.OutcomeAssigned, Seat: &seat},
			{Record: model.ShiftRecord{AgentID: "B", Queue: "BNS"}, Outcome: allocator.OutcomeUnassigned},
			{Record: model.ShiftRecord{AgentID: "C", Queue: "IBC Support"}, Outcome: allocator.OutcomeUnassigned},
			{Record: model.ShiftRecord{AgentID: "D", Queue: "BNS"}, Outcome: allocator.OutcomeNotScheduled},
		},
		ValidationErrors: []allocator.SeatValidationError{{Date: "2025-03-03", Seat: 1}},
	}

	r.ObserveResult(result, 250*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.OutcomesTotal.WithLabelValues(string(allocator.OutcomeAssigned))))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.OutcomesTotal.WithLabelValues(string(allocator.OutcomeUnassigned))))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.UnassignedByQueue.WithLabelValues("BNS")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.UnassignedByQueue.WithLabelValues("IBC Support")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ValidationFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(r.RunDuration))
}
