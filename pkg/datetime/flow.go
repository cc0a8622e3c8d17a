package datetime

import "time"

// Stage identifies where a picker flow currently sits.
type Stage int

const (
	// StageIdle means no picker is showing and nothing is pending.
	StageIdle Stage = iota
	// StageDate means the date picker is showing.
	StageDate
	// StageTime means the time picker is showing.
	StageTime
)

// Flow drives the multi-stage picker for a single field. For datetime mode
// the sequence is Idle -> date -> time -> Idle; date and time modes have a
// single stage. A candidate that violates its window is rejected in place:
// the flow returns to Idle, nothing is committed, and the caller receives the
// bound-naming message. Cancel at any stage likewise returns to Idle without
// touching the stored value.
type Flow struct {
	mode          Mode
	cons          Constraints
	displayFormat string

	stage       Stage
	pendingDate time.Time
	value       string
	committed   bool
}

// NewFlow builds an idle flow for the mode and constraints. displayFormat
// customizes the date names inside violation messages and may be empty.
func NewFlow(mode Mode, cons Constraints, displayFormat string) *Flow {
	return &Flow{mode: mode, cons: cons, displayFormat: displayFormat}
}

// Stage reports the current stage.
func (f *Flow) Stage() Stage {
	return f.stage
}

// Begin opens the first picker for the mode. Any previously pending state is
// discarded; a previously committed value is kept until a new one commits.
func (f *Flow) Begin() Stage {
	f.committed = false
	f.value = ""
	if f.mode == ModeTime {
		f.stage = StageTime
	} else {
		f.stage = StageDate
	}
	return f.stage
}

// OfferDate presents the accepted date-picker candidate. It returns ok=false
// with a message when the candidate violates the date window; the flow is
// then Idle again. On success in date mode the value commits; in datetime
// mode the flow advances to the time stage.
func (f *Flow) OfferDate(candidate time.Time) (ok bool, message string) {
	if f.stage != StageDate {
		return false, ""
	}
	if !f.cons.DateWithin(candidate) {
		f.stage = StageIdle
		return false, f.cons.DateBoundsMessage(f.displayFormat)
	}
	if f.mode == ModeDate {
		f.value = FormatValue(ModeDate, candidate)
		f.committed = true
		f.stage = StageIdle
		return true, ""
	}
	f.pendingDate = candidate
	f.stage = StageTime
	return true, ""
}

// OfferTime presents the accepted time-picker candidate. The time window is
// checked before the pending date and the candidate clock are combined.
func (f *Flow) OfferTime(candidate time.Time) (ok bool, message string) {
	if f.stage != StageTime {
		return false, ""
	}
	if !f.cons.TimeWithin(candidate) {
		f.stage = StageIdle
		return false, f.cons.TimeBoundsMessage()
	}
	if f.mode == ModeTime {
		f.value = FormatValue(ModeTime, candidate)
	} else {
		f.value = FormatValue(ModeDateTime, Combine(f.pendingDate, candidate))
	}
	f.committed = true
	f.stage = StageIdle
	return true, ""
}

// Cancel dismisses whichever picker is showing without committing anything.
func (f *Flow) Cancel() {
	f.stage = StageIdle
	f.pendingDate = time.Time{}
}

// Value returns the committed wire value of the last completed pass, if any.
func (f *Flow) Value() (string, bool) {
	return f.value, f.committed
}
