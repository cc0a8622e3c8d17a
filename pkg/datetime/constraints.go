package datetime

import (
	"fmt"
	"time"
)

// DisplayDateFormat is the fallback layout used when composing bound
// violation messages. Callers can override per theme.
const DisplayDateFormat = "Jan 2, 2006"

// Constraints hold the independent date and time windows for a field. Either
// half may be open-ended. Both intervals are closed: the date window spans
// whole calendar days, the time window compares minutes since midnight and
// ignores the calendar entirely.
type Constraints struct {
	MinDate *time.Time
	MaxDate *time.Time
	MinTime *time.Time
	MaxTime *time.Time
}

// ConstraintStrings is the stringly wire form of Constraints as found in
// schema properties.
type ConstraintStrings struct {
	MinDate string
	MaxDate string
	MinTime string
	MaxTime string
}

// ParseConstraints decodes wire constraint strings once, at schema
// normalization time. Empty strings leave that bound open; malformed bounds
// are an error so a broken schema surfaces instead of silently accepting
// everything.
func ParseConstraints(raw ConstraintStrings) (Constraints, error) {
	var c Constraints
	assignDate := func(dst **time.Time, value, name string) error {
		if value == "" {
			return nil
		}
		t, err := ParseDate(value)
		if err != nil {
			return fmt.Errorf("datetime: %s: %w", name, err)
		}
		*dst = &t
		return nil
	}
	assignTime := func(dst **time.Time, value, name string) error {
		if value == "" {
			return nil
		}
		t, err := ParseTime(value)
		if err != nil {
			return fmt.Errorf("datetime: %s: %w", name, err)
		}
		*dst = &t
		return nil
	}

	if err := assignDate(&c.MinDate, raw.MinDate, "minimum date"); err != nil {
		return Constraints{}, err
	}
	if err := assignDate(&c.MaxDate, raw.MaxDate, "maximum date"); err != nil {
		return Constraints{}, err
	}
	if err := assignTime(&c.MinTime, raw.MinTime, "minimum time"); err != nil {
		return Constraints{}, err
	}
	if err := assignTime(&c.MaxTime, raw.MaxTime, "maximum time"); err != nil {
		return Constraints{}, err
	}
	return c, nil
}

// DateWithin reports whether the calendar date of t falls inside the closed
// date window. The lower bound compares against start-of-day, the upper
// against end-of-day, so the window covers whole days inclusive.
func (c Constraints) DateWithin(t time.Time) bool {
	if c.MinDate != nil && t.Before(StartOfDay(*c.MinDate)) {
		return false
	}
	if c.MaxDate != nil && t.After(EndOfDay(*c.MaxDate)) {
		return false
	}
	return true
}

// TimeWithin reports whether t's minutes-since-midnight fall inside the
// closed time window, independent of which day t is on.
func (c Constraints) TimeWithin(t time.Time) bool {
	minutes := MinutesOfDay(t)
	if c.MinTime != nil && minutes < MinutesOfDay(*c.MinTime) {
		return false
	}
	if c.MaxTime != nil && minutes > MinutesOfDay(*c.MaxTime) {
		return false
	}
	return true
}

// HasDateBounds reports whether either date bound is set.
func (c Constraints) HasDateBounds() bool {
	return c.MinDate != nil || c.MaxDate != nil
}

// HasTimeBounds reports whether either time bound is set.
func (c Constraints) HasTimeBounds() bool {
	return c.MinTime != nil || c.MaxTime != nil
}

// DateBoundsMessage names the permitted date window for user display.
// displayFormat may be empty, in which case DisplayDateFormat is used.
func (c Constraints) DateBoundsMessage(displayFormat string) string {
	if displayFormat == "" {
		displayFormat = DisplayDateFormat
	}
	switch {
	case c.MinDate != nil && c.MaxDate != nil:
		return fmt.Sprintf("Date must be between %s and %s",
			c.MinDate.Format(displayFormat), c.MaxDate.Format(displayFormat))
	case c.MinDate != nil:
		return fmt.Sprintf("Date must be on or after %s", c.MinDate.Format(displayFormat))
	case c.MaxDate != nil:
		return fmt.Sprintf("Date must be on or before %s", c.MaxDate.Format(displayFormat))
	default:
		return ""
	}
}

// TimeBoundsMessage names the permitted time window for user display.
func (c Constraints) TimeBoundsMessage() string {
	switch {
	case c.MinTime != nil && c.MaxTime != nil:
		return fmt.Sprintf("Time must be between %s and %s",
			c.MinTime.Format(LayoutTime), c.MaxTime.Format(LayoutTime))
	case c.MinTime != nil:
		return fmt.Sprintf("Time must be at or after %s", c.MinTime.Format(LayoutTime))
	case c.MaxTime != nil:
		return fmt.Sprintf("Time must be at or before %s", c.MaxTime.Format(LayoutTime))
	default:
		return ""
	}
}
