package services

import (
	"sort"

	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/model"
	"github.com/jakechorley/seat-planner/pkg/db"
)

// findLatestRun finds the run with the most recent creation time
func findLatestRun(runs []db.SeatingRun) *db.SeatingRun {
	if len(runs) == 0 {
		return nil
	}

	latest := &runs[0]
	for i := 1; i < len(runs); i++ {
		if runs[i].CreatedAt.After(latest.CreatedAt) {
			latest = &runs[i]
		}
	}
	return latest
}

// horizonDates returns the distinct dates of the valid records, ascending
func horizonDates(parsed []model.ParsedRecord) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, p := range parsed {
		if p.Err != nil || seen[p.Record.Date] {
			continue
		}
		seen[p.Record.Date] = true
		dates = append(dates, p.Record.Date)
	}
	sort.Strings(dates)
	return dates
}

// collectDataErrors returns the record errors in input order
func collectDataErrors(parsed []model.ParsedRecord) []*model.RecordError {
	var errs []*model.RecordError
	for _, p := range parsed {
		if p.Err != nil {
			errs = append(errs, p.Err)
		}
	}
	return errs
}

// toSeatAssignments converts engine assignments to stored rows for a run
func toSeatAssignments(runID string, assignments []allocator.Assignment) []db.SeatAssignment {
	rows := make([]db.SeatAssignment, 0, len(assignments))
	for _, a := range assignments {
		record := a.Record

		start, stop := record.Start.String(), record.Stop.String()
		switch {
		case a.Outcome == allocator.OutcomeDataError:
			start, stop = "", ""
		case record.Off:
			start, stop = "OFF", "OFF"
		}

		// Data error rows can carry the unparsed date
		date, err := model.ParseDate(record.Date)
		if err != nil {
			date = ""
		}

		rows = append(rows, db.SeatAssignment{
			RunID:   runID,
			Row:     record.Row,
			AgentID: record.AgentID,
			Name:    record.Name,
			Date:    date,
			Queue:   string(record.Queue),
			Start:   start,
			Stop:    stop,
			Seat:    a.Seat,
			Area:    a.Area,
			Outcome: string(a.Outcome),
			Reason:  a.Reason,
		})
	}
	return rows
}
