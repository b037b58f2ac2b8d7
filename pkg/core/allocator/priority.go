package allocator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// LowestBatchRank is the rank given to a missing or malformed batch
const LowestBatchRank = 999

// Categorize returns the category for a shift starting at start
func Categorize(start model.TimeOfDay, bounds CategoryBounds) Category {
	switch {
	case start >= bounds.MorningStart && start <= bounds.MorningEnd:
		return CategoryMorning
	case start >= bounds.NightStart:
		return CategoryNight
	default:
		return CategoryOther
	}
}

// BatchRank converts a seniority batch into a rank, lower is more senior.
// "DH" ranks 0, "B<n>" and "<n>" rank n, anything else ranks lowest.
func BatchRank(batch string) int {
	batch = strings.ToUpper(strings.TrimSpace(batch))
	if batch == "DH" {
		return 0
	}
	batch = strings.TrimPrefix(batch, "B")
	n, err := strconv.Atoi(batch)
	if err != nil || n < 0 {
		return LowestBatchRank
	}
	return min(n, LowestBatchRank)
}

// isReusable reports whether an entry frees its seat early enough for a night shift
func isReusable(interval model.Interval, category Category, cutoff model.TimeOfDay) bool {
	return category == CategoryMorning && !interval.IsOvernight() && interval.Stop < cutoff
}

// newCandidate derives the category and reusability of a record
func newCandidate(record model.ShiftRecord, config *EngineConfig) *Candidate {
	interval := record.Interval()
	category := Categorize(record.Start, config.Categories)
	return &Candidate{
		Record:   record,
		Interval: interval,
		Category: category,
		Reusable: isReusable(interval, category, config.ReusableCutoff),
	}
}

// SortByPriority orders candidates by queue priority, category, batch rank, agent ID and
// source row. The order is total, so equal input always yields equal output.
func SortByPriority(candidates []*Candidate, queues model.QueueSet) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		if qa, qb := queues.Index(a.Record.Queue), queues.Index(b.Record.Queue); qa != qb {
			return qa < qb
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if ra, rb := BatchRank(a.Record.Batch), BatchRank(b.Record.Batch); ra != rb {
			return ra < rb
		}
		if a.Record.AgentID != b.Record.AgentID {
			return a.Record.AgentID < b.Record.AgentID
		}
		return a.Record.Row < b.Record.Row
	})
}
