package verification

import (
	"sort"
	"time"

	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// Peak occupancy sampling window
var (
	sampleFrom  = model.NewTimeOfDay(5, 0)
	sampleUntil = model.NewTimeOfDay(23, 30)
	sampleStep  = 30
)

// AreaCount is the number of agents seated in an area
type AreaCount struct {
	Area  string
	Count int
}

// DateQueueRow compares scheduled and seated agents for one queue on one date
type DateQueueRow struct {
	Date       string
	Queue      model.Queue
	Scheduled  int
	Assigned   int
	Unassigned int
	Areas      []AreaCount
}

// Diff returns assigned minus scheduled, zero when every scheduled agent has a seat
func (r DateQueueRow) Diff() int {
	return r.Assigned - r.Scheduled
}

// QueueTotal sums a queue over the whole horizon
type QueueTotal struct {
	Queue      model.Queue
	Scheduled  int
	Assigned   int
	Unassigned int
	Areas      []AreaCount
}

// Diff returns assigned minus scheduled
func (t QueueTotal) Diff() int {
	return t.Assigned - t.Scheduled
}

// UnassignedAgent is a scheduled agent left without a seat
type UnassignedAgent struct {
	Date       string
	AgentID    string
	Name       string
	Queue      model.Queue
	Supervisor string
	Batch      string
	Start      model.TimeOfDay
	Stop       model.TimeOfDay
	Reason     string
}

// DataErrorRow is a record that could not be read
type DataErrorRow struct {
	Row     int
	AgentID string
	Date    string
	Reason  string
}

// DatePeak is the busiest sampled time of a date
type DatePeak struct {
	Date   string
	Time   model.TimeOfDay
	Seated int
}

// Report summarizes a seating result
type Report struct {
	Rows          []DateQueueRow
	Totals        []QueueTotal
	Unassigned    []UnassignedAgent
	DataErrors    []DataErrorRow
	PeakOccupancy []DatePeak
}

// HasDiscrepancies returns true if any scheduled agent went without a seat
func (r *Report) HasDiscrepancies() bool {
	return len(r.Unassigned) > 0
}

// Options controls how a report is built
type Options struct {
	// Queues are listed first and in this order; other queues follow alphabetically
	Queues []model.Queue

	// Grace widens each shift when counting floor occupancy
	Grace time.Duration
}

type queueKey struct {
	date  string
	queue model.Queue
}

// Build creates a report from assignments. Only Assigned and Unassigned outcomes count as
// scheduled; records that were not scheduled or could not be read are listed separately.
func Build(assignments []allocator.Assignment, opts Options) *Report {
	report := &Report{}

	rows := make(map[queueKey]*DateQueueRow)
	totals := make(map[model.Queue]*QueueTotal)
	totalAreas := make(map[model.Queue]map[string]int)
	rowAreas := make(map[queueKey]map[string]int)
	dateSet := make(map[string]bool)
	queueSet := make(map[model.Queue]bool)

	for _, a := range assignments {
		record := a.Record

		if a.Outcome == allocator.OutcomeDataError {
			report.DataErrors = append(report.DataErrors, DataErrorRow{
				Row:     record.Row,
				AgentID: record.AgentID,
				Date:    record.Date,
				Reason:  a.Reason,
			})
			continue
		}
		if a.Outcome != allocator.OutcomeAssigned && a.Outcome != allocator.OutcomeUnassigned {
			continue
		}

		dateSet[record.Date] = true
		queueSet[record.Queue] = true

		key := queueKey{date: record.Date, queue: record.Queue}
		row, ok := rows[key]
		if !ok {
			row = &DateQueueRow{Date: record.Date, Queue: record.Queue}
			rows[key] = row
			rowAreas[key] = make(map[string]int)
		}
		total, ok := totals[record.Queue]
		if !ok {
			total = &QueueTotal{Queue: record.Queue}
			totals[record.Queue] = total
			totalAreas[record.Queue] = make(map[string]int)
		}

		row.Scheduled++
		total.Scheduled++

		if a.IsSeated() {
			row.Assigned++
			total.Assigned++
			if a.Area != nil {
				rowAreas[key][*a.Area]++
				totalAreas[record.Queue][*a.Area]++
			}
			continue
		}

		row.Unassigned++
		total.Unassigned++
		report.Unassigned = append(report.Unassigned, UnassignedAgent{
			Date:       record.Date,
			AgentID:    record.AgentID,
			Name:       record.Name,
			Queue:      record.Queue,
			Supervisor: record.Supervisor,
			Batch:      record.Batch,
			Start:      record.Start,
			Stop:       record.Stop,
			Reason:     a.Reason,
		})
	}

	dates := sortedKeys(dateSet)
	queues := orderQueues(opts.Queues, queueSet)

	for _, date := range dates {
		for _, q := range queues {
			key := queueKey{date: date, queue: q}
			row, ok := rows[key]
			if !ok {
				row = &DateQueueRow{Date: date, Queue: q}
			}
			row.Areas = areaCounts(rowAreas[key])
			report.Rows = append(report.Rows, *row)
		}
	}

	for _, q := range queues {
		total, ok := totals[q]
		if !ok {
			total = &QueueTotal{Queue: q}
		}
		total.Areas = areaCounts(totalAreas[q])
		report.Totals = append(report.Totals, *total)
	}

	sort.SliceStable(report.Unassigned, func(i, j int) bool {
		return report.Unassigned[i].Date < report.Unassigned[j].Date
	})

	report.PeakOccupancy = peakOccupancy(assignments, dates, int(opts.Grace/time.Minute))

	return report
}

// peakOccupancy samples seated agents every half hour and keeps each date's busiest time.
// Ties keep the earliest sample.
func peakOccupancy(assignments []allocator.Assignment, dates []string, grace int) []DatePeak {
	intervals := make(map[string][]model.Interval)
	for _, a := range assignments {
		if a.IsSeated() {
			intervals[a.Record.Date] = append(intervals[a.Record.Date], a.Record.Interval())
		}
	}

	peaks := make([]DatePeak, 0, len(dates))
	for _, date := range dates {
		peak := DatePeak{Date: date, Time: sampleFrom}
		for minute := int(sampleFrom); minute <= int(sampleUntil); minute += sampleStep {
			count := 0
			for _, interval := range intervals[date] {
				if allocator.ActiveAt(interval, model.TimeOfDay(minute), grace) {
					count++
				}
			}
			if count > peak.Seated {
				peak.Seated = count
				peak.Time = model.TimeOfDay(minute)
			}
		}
		peaks = append(peaks, peak)
	}
	return peaks
}

func orderQueues(configured []model.Queue, seen map[model.Queue]bool) []model.Queue {
	queues := make([]model.Queue, 0, len(configured)+len(seen))
	listed := make(map[model.Queue]bool)
	for _, q := range configured {
		if !listed[q] {
			queues = append(queues, q)
			listed[q] = true
		}
	}

	var extra []string
	for q := range seen {
		if !listed[q] {
			extra = append(extra, string(q))
		}
	}
	sort.Strings(extra)
	for _, q := range extra {
		queues = append(queues, model.Queue(q))
	}
	return queues
}

func areaCounts(counts map[string]int) []AreaCount {
	out := make([]AreaCount, 0, len(counts))
	for area, count := range counts {
		out = append(out, AreaCount{Area: area, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Area < out[j].Area
	})
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
