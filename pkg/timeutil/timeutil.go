package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the number of minutes in one wall-clock day.
const MinutesPerDay = 24 * 60

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", clock)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", clock, err)
	}

	if hours < 0 || hours > 23 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", clock)
	}

	return hours*60 + mins, nil
}

// FormatClock formats minutes since midnight as "HH:MM", wrapping at 24:00.
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes adds a number of minutes to an "HH:MM" string, wrapping at 24:00.
// The input must be a valid clock string.
func AddMinutes(clock string, minutes int) (string, error) {
	base, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	return FormatClock(base + minutes), nil
}

// FormatClockDisplay formats an "HH:MM" string for display, e.g. "07:00" -> "7:00 AM".
func FormatClockDisplay(clock string) string {
	mins, err := ParseClock(clock)
	if err != nil {
		return clock
	}

	hours := mins / 60
	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	displayHours := hours % 12
	if displayHours == 0 {
		displayHours = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHours, mins%60, period)
}

// FormatDuration renders a minute count as a human-readable duration,
// e.g. 90 -> "1 hr 30 min".
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", mins)
	case mins == 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d hr %d min", hours, mins)
	}
}
