package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the length of the daily clock used by shift intervals
const MinutesPerDay = 24 * 60

// DateLayout is the canonical layout for record dates
const DateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time expressed in minutes from midnight (0..1439)
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hours and minutes
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(((hour*60+minute)%MinutesPerDay + MinutesPerDay) % MinutesPerDay)
}

// Hour returns the hour component
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute returns the minute component
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04PM",
	"3:04 PM",
	"3:04:05PM",
	"3:04:05 PM",
	"3PM",
	"3 PM",
}

// ParseTimeOfDay parses a clock value as it appears in normalized roster tables.
//
// Accepted forms:
//   - "HH:MM" and "HH:MM:SS"
//   - 12-hour forms such as "3PM", "3:30PM", "3:30 PM"
//   - spreadsheet day fractions such as "0.625" (15:00)
//
// Seconds are truncated.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return 0, fmt.Errorf("empty time value")
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute()), nil
		}
	}

	// Spreadsheet cells that were never formatted come through as a fraction of a day
	if fraction, err := strconv.ParseFloat(value, 64); err == nil && fraction >= 0 && fraction < 1 {
		minutes := int(math.Round(fraction * MinutesPerDay))
		return TimeOfDay(minutes % MinutesPerDay), nil
	}

	return 0, fmt.Errorf("unrecognised time value %q", value)
}

// Interval is a shift interval on the daily clock. An interval whose Stop is before
// its Start crosses midnight.
type Interval struct {
	Start TimeOfDay
	Stop  TimeOfDay
}

// IsOvernight returns true if the interval crosses midnight
func (i Interval) IsOvernight() bool {
	return i.Stop < i.Start
}

// Duration returns the length of the interval in minutes
func (i Interval) Duration() int {
	if i.IsOvernight() {
		return MinutesPerDay - int(i.Start) + int(i.Stop)
	}
	return int(i.Stop - i.Start)
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.Stop.String()
}

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"02-Jan-2006",
	"2 Jan 2006",
}

// excelEpoch is day zero of the 1900 spreadsheet date system
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDate parses a record date and returns it in DateLayout form
func ParseDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty date value")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(DateLayout), nil
		}
	}

	// Unformatted spreadsheet serial day number
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial >= 1 {
		return excelEpoch.AddDate(0, 0, int(serial)).Format(DateLayout), nil
	}

	return "", fmt.Errorf("unrecognised date value %q", value)
}
