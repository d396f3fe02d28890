package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// GranuleMinutes is the scheduling resolution of a day.
	GranuleMinutes = 15

	// GranulesPerDay is the number of 15-minute granules in a day.
	GranulesPerDay = 24 * 60 / GranuleMinutes

	// MinutesPerDay is the number of minutes in a day.
	MinutesPerDay = 24 * 60
)

// ParseClock parses a wall-clock "HH:mm" string into minutes since midnight.
func ParseClock(v string) (int, error) {
	trimmed := strings.TrimSpace(v)
	parts := strings.Split(trimmed, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("timeutil: invalid clock value %q", v)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("timeutil: invalid hour in %q: %w", v, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("timeutil: invalid minute in %q: %w", v, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("timeutil: clock value %q out of range", v)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:mm". Values are wrapped
// into a single day so 1500 renders as "01:00".
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OnDate anchors minutes since midnight to the given calendar date.
func OnDate(date time.Time, minutes int) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(minutes) * time.Minute)
}

// ParseClockOn parses "HH:mm" and anchors it to the given date.
func ParseClockOn(date time.Time, v string) (time.Time, error) {
	minutes, err := ParseClock(v)
	if err != nil {
		return time.Time{}, err
	}
	return OnDate(date, minutes), nil
}

// GranuleStart returns the start, in minutes since midnight, of granule i.
func GranuleStart(i int) int {
	return i * GranuleMinutes
}

// SnapToGranule rounds minutes since midnight down to the containing granule
// boundary.
func SnapToGranule(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes >= MinutesPerDay {
		minutes = MinutesPerDay - GranuleMinutes
	}
	return minutes - minutes%GranuleMinutes
}

// SameDay reports whether the two instants fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return a.Local().Day() == b.Local().Day() &&
		a.Local().Month() == b.Local().Month() &&
		a.Local().Year() == b.Local().Year()
}
