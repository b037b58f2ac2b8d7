package allocator

import (
	"go.uber.org/zap"

	"github.com/jakechorley/seat-planner/pkg/core/catalog"
	"github.com/jakechorley/seat-planner/pkg/core/model"
)

// Placement is a nesting agent's fixed seat for the whole horizon
type Placement struct {
	Area string
	Seat int
}

// NestingPlacement maps agent IDs to their fixed seats. Read-only once resolved.
type NestingPlacement map[string]Placement

// ResolveNesting pins every nesting agent to one seat for the whole horizon.
//
// Agents are taken in first-seen order. The first nesting area that can hold the whole
// group is used; if none can, the areas are filled in configured order. Seats are taken
// in ascending number and skip any seat that could be unavailable on some date: reserved
// seats, override reservations on any horizon date, low headcount seats and the
// headcount-gated overflow area. Agents that do not fit are left out of the map.
func ResolveNesting(records []model.ShiftRecord, dates []string, config *EngineConfig) NestingPlacement {
	placement := make(NestingPlacement)

	var agents []string
	seen := make(map[string]bool)
	for _, record := range records {
		if !record.IsNesting() || !record.IsAssignable() || seen[record.AgentID] {
			continue
		}
		seen[record.AgentID] = true
		agents = append(agents, record.AgentID)
	}
	if len(agents) == 0 {
		return placement
	}

	excluded := nestingExclusions(dates, config)

	seatsByArea := make([][]catalog.Seat, len(config.NestingAreas))
	for i, area := range config.NestingAreas {
		for _, seat := range config.Catalog.AreaSeats(area) {
			if !excluded[seat.Number] {
				seatsByArea[i] = append(seatsByArea[i], seat)
			}
		}
	}

	var available []catalog.Seat
	for _, seats := range seatsByArea {
		if len(seats) >= len(agents) {
			available = seats
			break
		}
	}
	if available == nil {
		for _, seats := range seatsByArea {
			available = append(available, seats...)
		}
	}

	for i, agentID := range agents {
		if i >= len(available) {
			config.Logger.Warn("Nesting capacity exhausted",
				zap.Int("nesting_agents", len(agents)),
				zap.Int("nesting_seats", len(available)))
			break
		}
		placement[agentID] = Placement{Area: available[i].Area, Seat: available[i].Number}
	}

	return placement
}

// nestingExclusions returns seats a nesting agent must never be pinned to
func nestingExclusions(dates []string, config *EngineConfig) map[int]bool {
	excluded := make(map[int]bool)
	for _, date := range dates {
		for n := range config.reservedOn(date) {
			excluded[n] = true
		}
	}
	for _, n := range config.Headcount.LowHeadcountSeats {
		excluded[n] = true
	}
	if config.Headcount.OverflowArea != "" {
		for _, seat := range config.Catalog.AreaSeats(config.Headcount.OverflowArea) {
			excluded[seat.Number] = true
		}
	}
	return excluded
}
