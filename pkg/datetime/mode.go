package datetime

import "strings"

// Mode selects which parts of an instant a field captures.
type Mode string

const (
	ModeDate     Mode = "date"
	ModeTime     Mode = "time"
	ModeDateTime Mode = "datetime"
)

// Wire layouts for stored values. Display formatting is a presentation
// concern and lives in pkg/styling.
const (
	LayoutDate     = "2006-01-02"
	LayoutTime     = "15:04"
	LayoutDateTime = "2006-01-02T15:04"
)

// ParseMode maps a wire mode string onto a Mode, defaulting to ModeDate for
// empty or unrecognized input so a sloppy schema still yields a usable field.
func ParseMode(raw string) Mode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ModeTime):
		return ModeTime
	case string(ModeDateTime), "date-time":
		return ModeDateTime
	default:
		return ModeDate
	}
}

// Layout returns the wire layout for the mode.
func (m Mode) Layout() string {
	switch m {
	case ModeTime:
		return LayoutTime
	case ModeDateTime:
		return LayoutDateTime
	default:
		return LayoutDate
	}
}
