package fields

import (
	"context"
	"fmt"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
)

func runText(ctx context.Context, field schema.Field, deps Deps) error {
	current, _ := deps.Value.(string)
	if current == "" {
		current = field.DefaultValue
	}

	out, err := deps.Driver.Input(ctx, prompt.InputConfig{
		Message:     field.Label,
		Default:     current,
		Help:        field.Help,
		Placeholder: field.Placeholder,
	})
	if err != nil {
		return err
	}

	deps.State.Touch()
	deps.publish(out)
	deps.State.Evaluate(out)
	return nil
}

func runCheckbox(ctx context.Context, field schema.Field, deps Deps) error {
	current, _ := deps.Value.(bool)

	out, err := deps.Driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: field.Label,
		Default: current,
		Help:    field.Help,
	})
	if err != nil {
		return err
	}

	deps.State.Touch()
	deps.publish(out)
	deps.State.Evaluate(out)
	return nil
}

// runPlaceholder renders unrecognized field types as an inert notice. The
// field stays visible so the operator knows it exists, but it never captures a
// value and never blocks the rest of the form.
func runPlaceholder(ctx context.Context, field schema.Field, deps Deps) error {
	wire := field.WireType
	if wire == "" {
		wire = string(field.Type)
	}
	return deps.Driver.Info(ctx, fmt.Sprintf("%s: unsupported field type %q", field.Label, wire))
}
