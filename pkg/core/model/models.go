package model

import (
	"strings"
)

// Status represents the roster status of an agent on a given date
type Status string

const (
	StatusRegular  Status = "Regular"
	StatusNesting  Status = "Nesting"
	StatusTraining Status = "Training"
	StatusVacation Status = "Vacation"
	StatusOff      Status = "Off"
)

var statuses = []Status{StatusRegular, StatusNesting, StatusTraining, StatusVacation, StatusOff}

// IsValid checks if the status is one of the known statuses
func (s Status) IsValid() bool {
	for _, known := range statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsWorking returns true for statuses that need a seat on the floor
func (s Status) IsWorking() bool {
	return s == StatusRegular || s == StatusNesting
}

// ParseStatus parses a status value case-insensitively
func ParseStatus(value string) (Status, bool) {
	value = strings.TrimSpace(value)
	for _, known := range statuses {
		if strings.EqualFold(value, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Queue is the work queue an agent serves. Valid queues come from configuration.
type Queue string

// QueueSet is the ordered set of configured queues. Order is queue priority.
type QueueSet struct {
	queues []Queue
	index  map[string]int
}

// NewQueueSet creates a QueueSet in the given priority order. Duplicates are ignored.
func NewQueueSet(queues ...Queue) QueueSet {
	set := QueueSet{index: make(map[string]int, len(queues))}
	for _, q := range queues {
		key := queueKey(string(q))
		if _, exists := set.index[key]; exists {
			continue
		}
		set.index[key] = len(set.queues)
		set.queues = append(set.queues, q)
	}
	return set
}

func queueKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Lookup resolves a raw queue value to its configured spelling
func (s QueueSet) Lookup(value string) (Queue, bool) {
	i, ok := s.index[queueKey(value)]
	if !ok {
		return "", false
	}
	return s.queues[i], true
}

// Index returns the priority index of a queue, or Len() for unknown queues
func (s QueueSet) Index(q Queue) int {
	if i, ok := s.index[queueKey(string(q))]; ok {
		return i
	}
	return len(s.queues)
}

// Queues returns the queues in priority order
func (s QueueSet) Queues() []Queue {
	out := make([]Queue, len(s.queues))
	copy(out, s.queues)
	return out
}

// Len returns the number of configured queues
func (s QueueSet) Len() int {
	return len(s.queues)
}

// RawRecord is a record as read from a normalized roster table, before validation
type RawRecord struct {
	Row        int
	Date       string
	AgentID    string
	Name       string
	Start      string
	Stop       string
	Status     string
	Queue      string
	Supervisor string
	Batch      string
}

// ShiftRecord is one agent's roster entry for one date
type ShiftRecord struct {
	// Row is the 1-based source row, used for diagnostics and stable ordering
	Row        int
	AgentID    string
	Name       string
	Date       string
	Start      TimeOfDay
	Stop       TimeOfDay
	Off        bool
	Status     Status
	Queue      Queue
	Supervisor string
	Batch      string
}

// Interval returns the shift interval of the record
func (r ShiftRecord) Interval() Interval {
	return Interval{Start: r.Start, Stop: r.Stop}
}

// IsAssignable returns true if the record takes part in seat allocation
func (r ShiftRecord) IsAssignable() bool {
	return !r.Off && r.Status.IsWorking()
}

// IsNesting returns true for new-hire agents pinned to a fixed seat
func (r ShiftRecord) IsNesting() bool {
	return r.Status == StatusNesting
}

// ParsedRecord pairs a record with the data error found while parsing it, if any.
// When Err is set, Record holds whatever fields could be read.
type ParsedRecord struct {
	Record ShiftRecord
	Err    *RecordError
}
