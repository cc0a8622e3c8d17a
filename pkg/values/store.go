// Package values keeps the per-form value and error maps and projects them
// into the outbound submission payload. Everything runs on the single UI
// flow; each field's value and error live under their own key, so plain map
// updates are the only discipline needed.
package values

import (
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

// Store maintains fieldID -> value and fieldID -> active issue. Values are
// seeded from server-provided defaults at schema-initialization time and
// mutated only by the owning field's controller.
type Store struct {
	values map[string]any
	issues map[string]validation.Issue
}

// NewStore seeds a store with prefilled values.
func NewStore(seed map[string]any) *Store {
	values := make(map[string]any, len(seed))
	for key, value := range seed {
		values[key] = value
	}
	return &Store{
		values: values,
		issues: make(map[string]validation.Issue),
	}
}

// Set records a field value.
func (s *Store) Set(fieldID string, value any) {
	s.values[fieldID] = value
}

// Delete removes a field value entirely.
func (s *Store) Delete(fieldID string) {
	delete(s.values, fieldID)
}

// Value returns the current value for a field.
func (s *Store) Value(fieldID string) (any, bool) {
	value, ok := s.values[fieldID]
	return value, ok
}

// Values returns the underlying value map (mutable).
func (s *Store) Values() map[string]any {
	return s.values
}

// RecordIssue stores or clears a field's active issue. A later call for the
// same field overwrites; absence of an entry means the field is valid.
func (s *Store) RecordIssue(fieldID string, issue *validation.Issue) {
	if issue == nil {
		delete(s.issues, fieldID)
		return
	}
	s.issues[fieldID] = *issue
}

// Issue returns the active issue for a field.
func (s *Store) Issue(fieldID string) (validation.Issue, bool) {
	issue, ok := s.issues[fieldID]
	return issue, ok
}

// Issues returns a copy of the active issue map.
func (s *Store) Issues() map[string]validation.Issue {
	out := make(map[string]validation.Issue, len(s.issues))
	for key, issue := range s.issues {
		out[key] = issue
	}
	return out
}

// Clean reports whether no field currently holds an issue.
func (s *Store) Clean() bool {
	return len(s.issues) == 0
}

// Sink adapts the store into the validation side channel so controllers can
// report through their FieldState and the store stays authoritative.
func (s *Store) Sink() validation.Sink {
	return s.RecordIssue
}
