package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/pkg/core/allocator"
	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// Catalog builds the seat catalog from the configured areas and reserved seats
func (s *SeatingConfig) Catalog() (*catalog.Catalog, error) {
	areas := make([]catalog.AreaRange, len(s.Areas))
	for i, a := range s.Areas {
		areas[i] = catalog.AreaRange{Name: a.Name, First: a.First, Last: a.Last}
	}
	return catalog.New(areas, s.ReservedSeats)
}

// CategoryBounds parses the shift category boundaries
func (s *SeatingConfig) CategoryBounds() (allocator.CategoryBounds, error) {
	var bounds allocator.CategoryBounds
	fields := []struct {
		name  string
		value string
		dest  *model.TimeOfDay
	}{
		{"morningStart", s.ShiftCategories.MorningStart, &bounds.MorningStart},
		{"morningEnd", s.ShiftCategories.MorningEnd, &bounds.MorningEnd},
		{"nightStart", s.ShiftCategories.NightStart, &bounds.NightStart},
	}
	for _, f := range fields {
		t, err := model.ParseTimeOfDay(f.value)
		if err != nil {
			return bounds, fmt.Errorf("invalid shiftCategories.%s: %w", f.name, err)
		}
		*f.dest = t
	}
	return bounds, nil
}

// PriorityOrder returns the queue names in allocation priority order. Without an
// explicit queuePriority the order of the queues list is used.
func (s *SeatingConfig) PriorityOrder() ([]model.Queue, error) {
	configured := make(map[string]string, len(s.Queues))
	order := make([]model.Queue, 0, len(s.Queues))
	for _, q := range s.Queues {
		key := strings.ToLower(q.Name)
		if _, exists := configured[key]; exists {
			return nil, fmt.Errorf("queue %q is listed twice", q.Name)
		}
		configured[key] = q.Name
		order = append(order, model.Queue(q.Name))
	}

	if len(s.QueuePriority) == 0 {
		return order, nil
	}

	seen := make(map[string]bool, len(s.QueuePriority))
	order = order[:0]
	for _, name := range s.QueuePriority {
		key := strings.ToLower(name)
		canonical, ok := configured[key]
		if !ok {
			return nil, fmt.Errorf("queuePriority names unknown queue %q", name)
		}
		if seen[key] {
			return nil, fmt.Errorf("queuePriority lists %q twice", name)
		}
		seen[key] = true
		order = append(order, model.Queue(canonical))
	}
	for key, name := range configured {
		if !seen[key] {
			return nil, fmt.Errorf("queuePriority is missing queue %q", name)
		}
	}
	return order, nil
}

// QueueRules returns the engine queue rules in priority order
func (s *SeatingConfig) QueueRules() ([]allocator.QueueRule, error) {
	order, err := s.PriorityOrder()
	if err != nil {
		return nil, err
	}

	byName := make(map[model.Queue]QueueConfig, len(s.Queues))
	for _, q := range s.Queues {
		byName[model.Queue(q.Name)] = q
	}

	rules := make([]allocator.QueueRule, 0, len(order))
	for _, name := range order {
		q := byName[name]
		rule := allocator.QueueRule{
			Queue:          name,
			PreferredAreas: q.PreferredAreas,
			Confined:       q.Confined,
		}
		if q.Overflow != nil {
			rule.Overflow = &allocator.OverflowRule{
				Area:       q.Overflow.Area,
				Threshold:  q.Overflow.Threshold,
				Minimum:    q.Overflow.Minimum,
				ScaledUpTo: q.Overflow.ScaledUpTo,
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// OverrideDates returns the subset of dates matched by an rrule. The rule is anchored a
// week before the earliest date so weekly rules line up regardless of DTSTART.
func OverrideDates(rule string, dates []string) (map[string]bool, error) {
	matched := make(map[string]bool)
	if len(dates) == 0 {
		return matched, nil
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}

	wanted := make(map[string]bool, len(dates))
	var first, last time.Time
	for _, d := range dates {
		t, err := time.Parse(model.DateLayout, d)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d, err)
		}
		wanted[d] = true
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}

	searchStart := first.AddDate(0, 0, -7)
	searchEnd := last.AddDate(0, 0, 7)
	r.DTStart(searchStart)

	for _, occurrence := range r.Between(searchStart, searchEnd, true) {
		d := occurrence.Format(model.DateLayout)
		if wanted[d] {
			matched[d] = true
		}
	}
	return matched, nil
}

// EngineConfig builds the validated engine configuration for a horizon. Overrides are
// resolved against dates up front so the daily passes only read a fixed set.
func (s *SeatingConfig) EngineConfig(dates []string, workers int, logger *zap.Logger) (*allocator.EngineConfig, error) {
	cat, err := s.Catalog()
	if err != nil {
		return nil, err
	}

	bounds, err := s.CategoryBounds()
	if err != nil {
		return nil, err
	}

	cutoff, err := model.ParseTimeOfDay(s.ReusableCutoff)
	if err != nil {
		return nil, fmt.Errorf("invalid reusableCutoff: %w", err)
	}

	rules, err := s.QueueRules()
	if err != nil {
		return nil, err
	}

	overrides := make([]allocator.SeatOverride, 0, len(s.Overrides))
	for i, o := range s.Overrides {
		matched, err := OverrideDates(o.RRule, dates)
		if err != nil {
			return nil, fmt.Errorf("override %d: %w", i, err)
		}
		overrides = append(overrides, allocator.SeatOverride{
			AppliesTo:     func(date string) bool { return matched[date] },
			ReservedSeats: o.ReservedSeats,
		})
		if logger != nil {
			logger.Debug("Resolved seat override",
				zap.Int("index", i),
				zap.String("rrule", o.RRule),
				zap.Int("matched_dates", len(matched)))
		}
	}

	return allocator.NewEngineConfig(allocator.EngineConfig{
		Catalog:             cat,
		Queues:              rules,
		Categories:          bounds,
		ReusableCutoff:      cutoff,
		MaxOccupantsPerSeat: s.MaxOccupantsPerSeat,
		Headcount: allocator.HeadcountRule{
			LowHeadcountThreshold: s.Headcount.LowHeadcountThreshold,
			LowHeadcountSeats:     s.Headcount.LowHeadcountSeats,
			OverflowArea:          s.Headcount.OverflowArea,
			OverflowAreaThreshold: s.Headcount.OverflowAreaThreshold,
		},
		NestingAreas: s.Nesting.Areas,
		Overrides:    overrides,
		Workers:      workers,
		Logger:       logger,
	})
}
