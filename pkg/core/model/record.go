package model

import (
	"fmt"
	"strings"
)

// offMarker is the start/stop value used by rosters for a day off
const offMarker = "OFF"

// ParseRecord validates a raw record against the configured queues.
//
// Rules:
//   - AgentID, Date and Status are always required
//   - A start of "OFF" (any case) or an empty start marks the record off
//   - Working records need a known queue and a non-zero shift
//   - Records that are not working keep their queue as given and are never rejected for times
func ParseRecord(raw RawRecord, queues QueueSet) (ShiftRecord, *RecordError) {
	record := ShiftRecord{
		Row:        raw.Row,
		AgentID:    strings.TrimSpace(raw.AgentID),
		Name:       strings.TrimSpace(raw.Name),
		Date:       strings.TrimSpace(raw.Date),
		Queue:      Queue(strings.TrimSpace(raw.Queue)),
		Supervisor: strings.TrimSpace(raw.Supervisor),
		Batch:      strings.TrimSpace(raw.Batch),
	}

	fail := func(field string, err error) (ShiftRecord, *RecordError) {
		return record, &RecordError{Row: raw.Row, AgentID: record.AgentID, Field: field, Err: err}
	}

	if record.AgentID == "" {
		return fail("ID", ErrMissingField)
	}

	if record.Date == "" {
		return fail("Date", ErrMissingField)
	}
	date, err := ParseDate(record.Date)
	if err != nil {
		return fail("Date", fmt.Errorf("%w: %v", ErrInvalidDate, err))
	}
	record.Date = date

	if strings.TrimSpace(raw.Status) == "" {
		return fail("Status", ErrMissingField)
	}
	status, ok := ParseStatus(raw.Status)
	if !ok {
		return fail("Status", fmt.Errorf("%w: %q", ErrInvalidStatus, raw.Status))
	}
	record.Status = status

	start := strings.TrimSpace(raw.Start)
	stop := strings.TrimSpace(raw.Stop)
	if start == "" || strings.EqualFold(start, offMarker) || strings.EqualFold(stop, offMarker) {
		record.Off = true
	}

	if record.Off || !status.IsWorking() {
		// Times are informational only for records that will not be seated
		if t, err := ParseTimeOfDay(start); err == nil {
			record.Start = t
		}
		if t, err := ParseTimeOfDay(stop); err == nil {
			record.Stop = t
		}
		return record, nil
	}

	if record.Queue == "" {
		return fail("Queue", ErrMissingField)
	}
	queue, ok := queues.Lookup(string(record.Queue))
	if !ok {
		return fail("Queue", fmt.Errorf("%w: %q", ErrUnknownQueue, raw.Queue))
	}
	record.Queue = queue

	record.Start, err = ParseTimeOfDay(start)
	if err != nil {
		return fail("Start", fmt.Errorf("%w: %v", ErrInvalidTime, err))
	}
	if stop == "" {
		return fail("Stop", ErrMissingField)
	}
	record.Stop, err = ParseTimeOfDay(stop)
	if err != nil {
		return fail("Stop", fmt.Errorf("%w: %v", ErrInvalidTime, err))
	}
	if record.Start == record.Stop {
		return fail("Stop", fmt.Errorf("%w: %s", ErrZeroLengthShift, record.Interval()))
	}

	return record, nil
}

// ParseRecords parses every raw record in order. The first record for an (agent, date)
// pair wins; later ones are reported as duplicates.
func ParseRecords(raws []RawRecord, queues QueueSet) []ParsedRecord {
	parsed := make([]ParsedRecord, 0, len(raws))
	seen := make(map[string]int)

	for _, raw := range raws {
		record, recordErr := ParseRecord(raw, queues)
		if recordErr == nil {
			key := record.AgentID + "|" + record.Date
			if firstRow, exists := seen[key]; exists {
				recordErr = &RecordError{
					Row:     raw.Row,
					AgentID: record.AgentID,
					Field:   "ID",
					Err:     fmt.Errorf("%w: first seen on row %d", ErrDuplicateRecord, firstRow),
				}
			} else {
				seen[key] = raw.Row
			}
		}
		parsed = append(parsed, ParsedRecord{Record: record, Err: recordErr})
	}

	return parsed
}
