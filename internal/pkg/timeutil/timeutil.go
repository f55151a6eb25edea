package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates. ISO dates sort
// lexicographically, which the repositories rely on for range queries.
const DateLayout = "2006-01-02"

const MinutesPerDay = 24 * 60

// ParseClock parses a wall-clock string into minutes since midnight.
// Accepted forms: "HH:mm", "H.mm" and a bare hour "H".
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("cannot parse clock time: empty string")
	}

	sep := ":"
	if !strings.Contains(s, ":") && strings.Contains(s, ".") {
		sep = "."
	}

	parts := strings.Split(s, sep)
	if len(parts) > 2 {
		return 0, fmt.Errorf("cannot parse clock time %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("cannot parse clock time %q: %w", s, err)
	}

	minute := 0
	if len(parts) == 2 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("cannot parse clock time %q: %w", s, err)
		}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("cannot parse clock time %q: out of range", s)
	}

	return hour*60 + minute, nil
}

// Combine merges a calendar date and a wall-clock string into a single instant.
// All shift arithmetic happens in UTC; the nominal date already carries the
// employee's local calendar.
func Combine(date string, clock string) (time.Time, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date %q: %w", date, err)
	}

	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// HoursBetween returns the signed duration from start to end in fractional
// hours, rounded to two decimals.
func HoursBetween(start, end time.Time) float64 {
	return Round2(end.Sub(start).Minutes() / 60.0)
}

// AdjustOvernight returns the end instant for a start/end pair on the same
// nominal date. When end does not come strictly after start and the shift is
// flagged overnight, the end rolls over to the next calendar day.
func AdjustOvernight(start, end time.Time, overnight bool) time.Time {
	if overnight && !end.After(start) {
		return end.Add(24 * time.Hour)
	}
	return end
}

// CrossesMidnight reports whether a start/end wall-clock pair implies the
// interval spills into the next calendar day.
func CrossesMidnight(startMinutes, endMinutes int) bool {
	return endMinutes <= startMinutes
}

// NextDate returns the ISO date one calendar day after date.
func NextDate(date string) (string, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("cannot parse date %q: %w", date, err)
	}
	return day.AddDate(0, 0, 1).Format(DateLayout), nil
}

// PrevDate returns the ISO date one calendar day before date.
func PrevDate(date string) (string, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("cannot parse date %q: %w", date, err)
	}
	return day.AddDate(0, 0, -1).Format(DateLayout), nil
}

// WeekStart returns the Monday of the ISO week containing date.
func WeekStart(date string) (string, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("cannot parse date %q: %w", date, err)
	}
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset).Format(DateLayout), nil
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
