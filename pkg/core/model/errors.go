package model

import (
	"errors"
	"fmt"
)

// Data errors. A record carrying one of these is excluded from allocation and reported,
// the run itself continues.
var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrUnknownQueue    = errors.New("unknown queue")
	ErrZeroLengthShift = errors.New("zero-length shift")
	ErrDuplicateRecord = errors.New("duplicate record for agent and date")
)

// RecordError wraps a data error with the location of the offending record
type RecordError struct {
	Row     int
	AgentID string
	Field   string
	Err     error
}

func (e *RecordError) Error() string {
	if e.AgentID == "" {
		return fmt.Sprintf("row %d: %s: %v", e.Row, e.Field, e.Err)
	}
	return fmt.Sprintf("row %d (agent %s): %s: %v", e.Row, e.AgentID, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Kind returns a short, stable label for the wrapped sentinel, used for metric labels
func (e *RecordError) Kind() string {
	switch {
	case errors.Is(e.Err, ErrMissingField):
		return "missing_field"
	case errors.Is(e.Err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(e.Err, ErrInvalidTime):
		return "invalid_time"
	case errors.Is(e.Err, ErrInvalidStatus):
		return "invalid_status"
	case errors.Is(e.Err, ErrUnknownQueue):
		return "unknown_queue"
	case errors.Is(e.Err, ErrZeroLengthShift):
		return "zero_length_shift"
	case errors.Is(e.Err, ErrDuplicateRecord):
		return "duplicate_record"
	default:
		return "other"
	}
}
