package utils

import (
	"fmt"
	"time"
)

// Dates are "YYYY-MM-DD" strings and times of day are minutes from midnight,
// matching how reservations and availability blocks are stored.

const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" date string in the local time zone.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// ParseMinuteOfDay converts an "HH:MM" clock string to minutes from midnight.
func ParseMinuteOfDay(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", clock, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q", clock)
	}
	return h*60 + m, nil
}

// FormatMinuteOfDay converts minutes from midnight to an "HH:MM" clock string.
func FormatMinuteOfDay(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// MinuteOfDayOn anchors a minute-of-day onto a concrete date.
func MinuteOfDayOn(day time.Time, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).
		Add(time.Duration(minute) * time.Minute)
}
