// Package session drives one pass over a normalized form: a field state and
// value slot per field, controllers dispatched in schema order, and the
// all-or-nothing submission gate at the end.
package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/fields"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/location"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/styling"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/values"
)

// ErrAborted mirrors the prompt-layer abort so callers need only one sentinel.
var ErrAborted = prompt.ErrAborted

// Session owns the runtime state of one form pass. Construct with New, walk
// the fields with Run, then call Submit.
type Session struct {
	form     schema.Schema
	store    *values.Store
	states   map[string]*validation.FieldState
	registry *fields.Registry

	driver     prompt.Driver
	theme      styling.Theme
	logger     *zap.Logger
	gate       *location.Gate
	images     fields.ImageSource
	signatures fields.SignatureSource
	sink       validation.Sink
}

// Option configures a Session.
type Option func(*Session)

// WithDriver sets the prompt driver. Defaults to the interactive survey
// driver.
func WithDriver(driver prompt.Driver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme overrides the resolved theme.
func WithTheme(theme styling.Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithLocationGate wires the capture gate used by location fields.
func WithLocationGate(gate *location.Gate) Option {
	return func(s *Session) {
		s.gate = gate
	}
}

// WithImageSource wires the picker used by image fields.
func WithImageSource(source fields.ImageSource) Option {
	return func(s *Session) {
		s.images = source
	}
}

// WithSignatureSource wires the pointer stream used by signature fields.
func WithSignatureSource(source fields.SignatureSource) Option {
	return func(s *Session) {
		s.signatures = source
	}
}

// WithIssueSink mirrors every issue transition to an external observer in
// addition to the session's own store.
func WithIssueSink(sink validation.Sink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// WithRegistry swaps the controller registry, e.g. to add custom field types.
func WithRegistry(registry *fields.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithSeedValues prefills the value store, e.g. from a saved draft.
func WithSeedValues(seed map[string]any) Option {
	return func(s *Session) {
		for fieldID, value := range seed {
			s.store.Set(fieldID, value)
		}
	}
}

// New builds a session for a normalized form.
func New(form schema.Schema, options ...Option) *Session {
	s := &Session{
		form:     form,
		store:    values.NewStore(nil),
		states:   make(map[string]*validation.FieldState, form.Len()),
		registry: fields.NewRegistry(),
		driver:   prompt.NewSurveyDriver(),
		theme:    styling.Default(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	for _, field := range form.Fields() {
		s.states[field.FieldID] = validation.NewFieldState(
			field.FieldID, field.Label, field.Required, s.issueSink())
		if field.DefaultValue != "" {
			if _, seeded := s.store.Value(field.FieldID); !seeded {
				s.store.Set(field.FieldID, field.DefaultValue)
			}
		}
	}
	return s
}

func (s *Session) issueSink() validation.Sink {
	storeSink := s.store.Sink()
	external := s.sink
	return func(fieldID string, issue *validation.Issue) {
		storeSink(fieldID, issue)
		if external != nil {
			external(fieldID, issue)
		}
	}
}

// Store exposes the session's value store.
func (s *Session) Store() *values.Store {
	return s.store
}

// State returns the validation state for one field.
func (s *Session) State(fieldID string) (*validation.FieldState, bool) {
	state, ok := s.states[fieldID]
	return state, ok
}

// Run walks every field in schema order. Context cancellation between fields
// stops the walk; a value callback arriving after cancellation is dropped so
// a torn-down session never mutates the store.
func (s *Session) Run(ctx context.Context) error {
	for _, field := range s.form.Fields() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.RunField(ctx, field.FieldID); err != nil {
			return err
		}
	}
	return nil
}

// RunField dispatches a single field's controller.
func (s *Session) RunField(ctx context.Context, fieldID string) error {
	field, ok := s.form.Field(fieldID)
	if !ok {
		return fmt.Errorf("session: unknown field %q", fieldID)
	}
	state := s.states[fieldID]
	current, _ := s.store.Value(fieldID)

	deps := fields.Deps{
		Driver: s.driver,
		Theme:  s.theme,
		State:  state,
		Logger: s.logger,
		Value:  current,
		OnValue: func(value any) {
			if ctx.Err() != nil {
				s.logger.Debug("dropping value after teardown", zap.String("fieldId", fieldID))
				return
			}
			if value == nil {
				s.store.Delete(fieldID)
				return
			}
			s.store.Set(fieldID, value)
		},
		Gate:       s.gate,
		Images:     s.images,
		Signatures: s.signatures,
	}

	err := s.registry.Resolve(field.Type).Run(ctx, field, deps)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return ErrAborted
		}
		return fmt.Errorf("session: field %q: %w", fieldID, err)
	}
	s.logger.Debug("field completed",
		zap.String("fieldId", fieldID),
		zap.String("type", string(field.Type)),
		zap.Bool("valid", state.Valid()))
	return nil
}

// Submit re-evaluates every field against its current value and assembles the
// ordered payload. Any active issue blocks the whole submission.
func (s *Session) Submit() ([]values.Entry, error) {
	for _, field := range s.form.Fields() {
		state := s.states[field.FieldID]
		state.Touch()
		value, _ := s.store.Value(field.FieldID)
		state.Evaluate(value)
	}
	entries, err := values.Assemble(s.form, s.store)
	if err != nil {
		s.logger.Info("submission blocked", zap.Int("issues", len(s.store.Issues())))
		return nil, err
	}
	s.logger.Info("submission assembled", zap.Int("fields", len(entries)))
	return entries, nil
}

// SubmitPayload is Submit plus serialization.
func (s *Session) SubmitPayload() ([]byte, error) {
	entries, err := s.Submit()
	if err != nil {
		return nil, err
	}
	return values.EncodePayload(entries)
}
