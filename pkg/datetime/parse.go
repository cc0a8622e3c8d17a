package datetime

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate parses a wire date (YYYY-MM-DD) in the local zone.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutDate, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("datetime: parse date %q: %w", raw, err)
	}
	return t, nil
}

// ParseTime parses a wire time (HH:mm, 24-hour). The calendar portion of the
// result is the zero date and must not be interpreted.
func ParseTime(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutTime, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("datetime: parse time %q: %w", raw, err)
	}
	return t, nil
}

// ParseValue parses a stored value according to the field mode.
func ParseValue(mode Mode, raw string) (time.Time, error) {
	t, err := time.ParseInLocation(mode.Layout(), strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("datetime: parse %s value %q: %w", mode, raw, err)
	}
	return t, nil
}

// FormatValue serializes an instant into the wire form for the mode. Seconds
// and finer precision are always discarded.
func FormatValue(mode Mode, t time.Time) string {
	return t.Format(mode.Layout())
}

// Combine merges the calendar portion of date with the clock portion of
// clock, minute precision.
func Combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, date.Location())
}

// StartOfDay zeroes the time-of-day component.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// MinutesOfDay collapses an instant to minutes since local midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
