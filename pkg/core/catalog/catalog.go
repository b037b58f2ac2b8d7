package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCatalog is wrapped by every catalog construction error
var ErrInvalidCatalog = errors.New("invalid seat catalog")

// AreaRange is a named, contiguous, inclusive range of seat numbers
type AreaRange struct {
	Name  string
	First int
	Last  int
}

// Seat is a single physical workstation
type Seat struct {
	Number   int
	Area     string
	Reserved bool
}

// Catalog is the immutable floor plan. It is safe for concurrent reads.
type Catalog struct {
	areas     []AreaRange
	seats     []Seat
	byNumber  map[int]int
	areaIndex map[string]int
}

// New builds a catalog from area ranges (kept in the given order) and reserved seat numbers
func New(areas []AreaRange, reserved []int) (*Catalog, error) {
	if len(areas) == 0 {
		return nil, fmt.Errorf("%w: no areas defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		areas:     make([]AreaRange, 0, len(areas)),
		byNumber:  make(map[int]int),
		areaIndex: make(map[string]int, len(areas)),
	}

	for _, area := range areas {
		name := strings.TrimSpace(area.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: area with empty name", ErrInvalidCatalog)
		}
		if _, exists := c.areaIndex[name]; exists {
			return nil, fmt.Errorf("%w: duplicate area %q", ErrInvalidCatalog, name)
		}
		if area.First < 1 || area.First > area.Last {
			return nil, fmt.Errorf("%w: area %q has invalid range %d-%d", ErrInvalidCatalog, name, area.First, area.Last)
		}

		c.areaIndex[name] = len(c.areas)
		c.areas = append(c.areas, AreaRange{Name: name, First: area.First, Last: area.Last})

		for n := area.First; n <= area.Last; n++ {
			if existing, exists := c.byNumber[n]; exists {
				return nil, fmt.Errorf("%w: seat %d is in both %q and %q", ErrInvalidCatalog, n, c.seats[existing].Area, name)
			}
			c.byNumber[n] = len(c.seats)
			c.seats = append(c.seats, Seat{Number: n, Area: name})
		}
	}

	for _, n := range reserved {
		i, exists := c.byNumber[n]
		if !exists {
			return nil, fmt.Errorf("%w: reserved seat %d is not in any area", ErrInvalidCatalog, n)
		}
		c.seats[i].Reserved = true
	}

	return c, nil
}

// Areas returns area names in configured order
func (c *Catalog) Areas() []string {
	names := make([]string, len(c.areas))
	for i, area := range c.areas {
		names[i] = area.Name
	}
	return names
}

// Ranges returns the configured area ranges
func (c *Catalog) Ranges() []AreaRange {
	out := make([]AreaRange, len(c.areas))
	copy(out, c.areas)
	return out
}

// HasArea reports whether the area is defined
func (c *Catalog) HasArea(name string) bool {
	_, ok := c.areaIndex[name]
	return ok
}

// AreaOrder returns the configured position of an area, or -1 if unknown
func (c *Catalog) AreaOrder(name string) int {
	if i, ok := c.areaIndex[name]; ok {
		return i
	}
	return -1
}

// Seats returns every seat in configured area order, then by number
func (c *Catalog) Seats() []Seat {
	out := make([]Seat, len(c.seats))
	copy(out, c.seats)
	return out
}

// Seat looks up a seat by number
func (c *Catalog) Seat(n int) (Seat, bool) {
	i, ok := c.byNumber[n]
	if !ok {
		return Seat{}, false
	}
	return c.seats[i], true
}

// IsReserved reports whether a seat is permanently reserved. Unknown seats are not reserved.
func (c *Catalog) IsReserved(n int) bool {
	i, ok := c.byNumber[n]
	return ok && c.seats[i].Reserved
}

// AreaSeats returns the seats of an area in ascending number, including reserved seats
func (c *Catalog) AreaSeats(name string) []Seat {
	i, ok := c.areaIndex[name]
	if !ok {
		return nil
	}
	area := c.areas[i]
	out := make([]Seat, 0, area.Last-area.First+1)
	for n := area.First; n <= area.Last; n++ {
		out = append(out, c.seats[c.byNumber[n]])
	}
	return out
}

// Capacity returns the number of non-reserved seats in an area
func (c *Catalog) Capacity(name string) int {
	count := 0
	for _, seat := range c.AreaSeats(name) {
		if !seat.Reserved {
			count++
		}
	}
	return count
}

// SeatNumbers returns all seat numbers in ascending order
func (c *Catalog) SeatNumbers() []int {
	numbers := make([]int, 0, len(c.seats))
	for _, seat := range c.seats {
		numbers = append(numbers, seat.Number)
	}
	sort.Ints(numbers)
	return numbers
}
