package validation

import "fmt"

// Phase is the lifecycle position of a field's validation state.
type Phase int

const (
	// PhaseClean means the user has never interacted with the field. No
	// error is surfaced in this phase even when the value would be invalid.
	PhaseClean Phase = iota
	// PhaseTouched means the field saw at least one interaction (value
	// change, blur, picker dismiss) or an externally injected error.
	PhaseTouched
)

// FieldState is the per-field validation machine shared by every controller:
// Clean -> Touched -> {Valid, Invalid(message)}. It owns the single active
// issue for the field and mirrors every transition to the sink so the
// aggregating screen never re-derives state.
type FieldState struct {
	fieldID  string
	label    string
	required bool

	phase Phase
	issue *Issue
	sink  Sink
}

// NewFieldState builds a Clean state for the field. The label is used for the
// generic required message; sink may be nil.
func NewFieldState(fieldID, label string, required bool, sink Sink) *FieldState {
	return &FieldState{fieldID: fieldID, label: label, required: required, sink: sink}
}

// Phase reports the current lifecycle phase.
func (s *FieldState) Phase() Phase {
	return s.phase
}

// Touched reports whether the field left the Clean phase.
func (s *FieldState) Touched() bool {
	return s.phase != PhaseClean
}

// Touch moves the field out of Clean. First value change, first blur and
// first picker dismiss all funnel through here.
func (s *FieldState) Touch() {
	s.phase = PhaseTouched
}

// Issue returns the active issue, nil when the field is currently valid.
func (s *FieldState) Issue() *Issue {
	return s.issue
}

// Valid reports whether no issue is active.
func (s *FieldState) Valid() bool {
	return s.issue == nil
}

// Fail records a controller-specific constraint violation. It implies Touch
// and overrides any generic required message.
func (s *FieldState) Fail(code, message string) {
	s.phase = PhaseTouched
	s.issue = &Issue{FieldID: s.fieldID, Code: code, Message: message}
	s.notify()
}

// Failf is Fail with formatting.
func (s *FieldState) Failf(code, format string, args ...any) {
	s.Fail(code, fmt.Sprintf(format, args...))
}

// Clear drops the active issue, transitioning to Valid.
func (s *FieldState) Clear() {
	if s.issue == nil {
		return
	}
	s.issue = nil
	s.notify()
}

// Evaluate re-checks the required rule against the current value. Controllers
// call it on every value change and on submit attempts; while Clean it is a
// no-op so untouched fields never show errors. It returns the resulting
// validity.
func (s *FieldState) Evaluate(value any) bool {
	if s.phase == PhaseClean {
		return true
	}
	if s.required && Empty(value) {
		s.issue = &Issue{
			FieldID: s.fieldID,
			Code:    CodeRequired,
			Message: fmt.Sprintf("%s is required", s.label),
		}
		s.notify()
		return false
	}
	// The required rule is the only generic one; specific violations are
	// recorded by controllers through Fail.
	if s.issue != nil && s.issue.Code == CodeRequired {
		s.issue = nil
		s.notify()
	}
	return s.issue == nil
}

func (s *FieldState) notify() {
	if s.sink != nil {
		s.sink(s.fieldID, s.issue)
	}
}

// Empty reports whether a field value counts as empty/falsy for the required
// rule: nil, empty string, false, or an empty slice.
func Empty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}
