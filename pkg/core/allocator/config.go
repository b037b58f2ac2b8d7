package allocator

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// DefaultMaxOccupantsPerSeat is the hot-desking limit used when none is configured
const DefaultMaxOccupantsPerSeat = 2

// OverflowRule moves part of a queue's agents into a secondary area once the queue
// grows past a threshold
type OverflowRule struct {
	// Area is the secondary area
	Area string

	// Threshold is the daily queue headcount above which the rule applies
	Threshold int

	// Minimum is the smallest overflow quota while headcount is at most ScaledUpTo
	Minimum int

	// ScaledUpTo is the headcount above which the quota is simply headcount - Threshold
	ScaledUpTo int
}

// Target returns the number of agents that must go to the overflow area for a daily
// queue headcount of n
func (r *OverflowRule) Target(n int) int {
	if r == nil || n <= r.Threshold {
		return 0
	}
	target := n - r.Threshold
	if n <= r.ScaledUpTo {
		target = max(r.Minimum, target)
	}
	return min(target, n)
}

// QueueRule holds the seating preferences for a queue
type QueueRule struct {
	Queue model.Queue

	// PreferredAreas are searched in order. Empty means the whole pool in catalog order.
	PreferredAreas []string

	Overflow *OverflowRule

	// Confined queues never fall back to seats outside their candidate list
	Confined bool
}

// CategoryBounds holds the start-time boundaries used to categorize shifts
type CategoryBounds struct {
	MorningStart model.TimeOfDay
	MorningEnd   model.TimeOfDay
	NightStart   model.TimeOfDay
}

// HeadcountRule holds the headcount-dependent pool adjustments
type HeadcountRule struct {
	// LowHeadcountSeats are dropped from the pool when headcount <= LowHeadcountThreshold
	LowHeadcountThreshold int
	LowHeadcountSeats     []int

	// OverflowArea is only in the pool when headcount > OverflowAreaThreshold and
	// nobody on the date is in training
	OverflowArea          string
	OverflowAreaThreshold int
}

// SeatOverride reserves extra seats on the dates it applies to
type SeatOverride struct {
	// AppliesTo is a function that returns true if this override applies to the given date
	AppliesTo func(date string) bool

	ReservedSeats []int
}

// EngineConfig is the immutable configuration shared by every daily pass
type EngineConfig struct {
	Catalog *catalog.Catalog

	// Queues in priority order
	Queues []QueueRule

	Categories     CategoryBounds
	ReusableCutoff model.TimeOfDay

	MaxOccupantsPerSeat int

	Headcount HeadcountRule

	// NestingAreas are filled in order when placing nesting agents
	NestingAreas []string

	Overrides []SeatOverride

	// Workers is the number of dates allocated concurrently
	Workers int

	Logger *zap.Logger

	queueSet   model.QueueSet
	queueRules map[model.Queue]*QueueRule
}

// NewEngineConfig validates the configuration and fills defaults
func NewEngineConfig(c EngineConfig) (*EngineConfig, error) {
	if c.Catalog == nil {
		return nil, fmt.Errorf("seat catalog is required")
	}
	if len(c.Queues) == 0 {
		return nil, fmt.Errorf("at least one queue is required")
	}

	if c.MaxOccupantsPerSeat == 0 {
		c.MaxOccupantsPerSeat = DefaultMaxOccupantsPerSeat
	}
	if c.MaxOccupantsPerSeat < 1 {
		return nil, fmt.Errorf("max occupants per seat must be positive, got %d", c.MaxOccupantsPerSeat)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Categories.MorningStart > c.Categories.MorningEnd {
		return nil, fmt.Errorf("morning start %s is after morning end %s", c.Categories.MorningStart, c.Categories.MorningEnd)
	}

	names := make([]model.Queue, 0, len(c.Queues))
	c.queueRules = make(map[model.Queue]*QueueRule, len(c.Queues))
	queues := make([]QueueRule, len(c.Queues))
	copy(queues, c.Queues)
	c.Queues = queues

	for i := range c.Queues {
		rule := &c.Queues[i]
		if rule.Queue == "" {
			return nil, fmt.Errorf("queue %d has no name", i)
		}
		if _, exists := c.queueRules[rule.Queue]; exists {
			return nil, fmt.Errorf("queue %q is listed twice", rule.Queue)
		}
		for _, area := range rule.PreferredAreas {
			if !c.Catalog.HasArea(area) {
				return nil, fmt.Errorf("queue %q prefers unknown area %q", rule.Queue, area)
			}
		}
		if rule.Overflow != nil {
			if !c.Catalog.HasArea(rule.Overflow.Area) {
				return nil, fmt.Errorf("queue %q overflows to unknown area %q", rule.Queue, rule.Overflow.Area)
			}
			if rule.Overflow.Threshold < 0 || rule.Overflow.Minimum < 0 {
				return nil, fmt.Errorf("queue %q has a negative overflow threshold or minimum", rule.Queue)
			}
		}
		c.queueRules[rule.Queue] = rule
		names = append(names, rule.Queue)
	}
	c.queueSet = model.NewQueueSet(names...)

	for _, area := range c.NestingAreas {
		if !c.Catalog.HasArea(area) {
			return nil, fmt.Errorf("unknown nesting area %q", area)
		}
	}
	if c.Headcount.OverflowArea != "" && !c.Catalog.HasArea(c.Headcount.OverflowArea) {
		return nil, fmt.Errorf("unknown headcount overflow area %q", c.Headcount.OverflowArea)
	}
	for _, n := range c.Headcount.LowHeadcountSeats {
		if _, ok := c.Catalog.Seat(n); !ok {
			return nil, fmt.Errorf("unknown low headcount seat %d", n)
		}
	}
	for i, override := range c.Overrides {
		if override.AppliesTo == nil {
			return nil, fmt.Errorf("override %d has no date rule", i)
		}
		for _, n := range override.ReservedSeats {
			if _, ok := c.Catalog.Seat(n); !ok {
				return nil, fmt.Errorf("override %d reserves unknown seat %d", i, n)
			}
		}
	}

	return &c, nil
}

// QueueSet returns the configured queues in priority order
func (c *EngineConfig) QueueSet() model.QueueSet {
	return c.queueSet
}

// rule returns the rule for a queue, or nil when the queue has no configured rule
func (c *EngineConfig) rule(q model.Queue) *QueueRule {
	return c.queueRules[q]
}

// reservedOn returns the seats reserved on a date, permanent and override
func (c *EngineConfig) reservedOn(date string) map[int]bool {
	reserved := make(map[int]bool)
	for _, seat := range c.Catalog.Seats() {
		if seat.Reserved {
			reserved[seat.Number] = true
		}
	}
	for _, override := range c.Overrides {
		if override.AppliesTo(date) {
			for _, n := range override.ReservedSeats {
				reserved[n] = true
			}
		}
	}
	return reserved
}
