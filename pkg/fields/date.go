package fields

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/datetime"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

// runDate walks the staged picker until a value commits or the operator backs
// out with an empty answer. A window violation records the issue and reopens
// the picker, so a later in-range pick clears the error.
func runDate(ctx context.Context, field schema.Field, deps Deps) error {
	flow := datetime.NewFlow(field.Mode, field.Constraints, deps.Theme.DateDisplayFormat)
	current, _ := deps.Value.(string)

	for {
		flow.Begin()
		for flow.Stage() != datetime.StageIdle {
			var err error
			switch flow.Stage() {
			case datetime.StageDate:
				err = offerDateStage(ctx, field, deps, flow, current)
			case datetime.StageTime:
				err = offerTimeStage(ctx, field, deps, flow, current)
			}
			if err != nil {
				if err == errPickerDismissed {
					deps.State.Touch()
					// A pending range issue outranks the generic rule.
					if deps.State.Valid() {
						deps.State.Evaluate(deps.Value)
					}
					return nil
				}
				return err
			}
		}

		if value, ok := flow.Value(); ok {
			deps.State.Touch()
			deps.State.Clear()
			deps.publish(value)
			deps.State.Evaluate(value)
			return nil
		}
		// Window violation: the issue is already recorded, reopen the picker.
	}
}

// errPickerDismissed is internal to the date flow; an empty answer dismisses
// the picker without committing.
var errPickerDismissed = fmt.Errorf("fields: picker dismissed")

func offerDateStage(ctx context.Context, field schema.Field, deps Deps, flow *datetime.Flow, current string) error {
	candidate, err := pickerInput(ctx, deps, prompt.InputConfig{
		Message:     field.Label,
		Default:     datePortion(current),
		Help:        field.Help,
		Placeholder: datetime.LayoutDate,
	}, datetime.ParseDate, "Enter a valid date as "+datetime.LayoutDate)
	if err != nil {
		return err
	}
	if ok, message := flow.OfferDate(candidate); !ok {
		deps.State.Fail(validation.CodeDateRange, message)
	}
	return nil
}

func offerTimeStage(ctx context.Context, field schema.Field, deps Deps, flow *datetime.Flow, current string) error {
	candidate, err := pickerInput(ctx, deps, prompt.InputConfig{
		Message:     field.Label + " (time)",
		Default:     timePortion(current),
		Help:        field.Help,
		Placeholder: datetime.LayoutTime,
	}, datetime.ParseTime, "Enter a valid time as "+datetime.LayoutTime)
	if err != nil {
		return err
	}
	if ok, message := flow.OfferTime(candidate); !ok {
		deps.State.Fail(validation.CodeTimeRange, message)
	}
	return nil
}

// pickerInput keeps asking until the answer parses. Malformed text is a
// keystroke problem, not a constraint violation, so it never records an
// issue.
func pickerInput(
	ctx context.Context,
	deps Deps,
	cfg prompt.InputConfig,
	parse func(string) (time.Time, error),
	hint string,
) (time.Time, error) {
	for {
		raw, err := deps.Driver.Input(ctx, cfg)
		if err != nil {
			return time.Time{}, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return time.Time{}, errPickerDismissed
		}
		candidate, err := parse(raw)
		if err == nil {
			return candidate, nil
		}
		if err := deps.Driver.Info(ctx, hint); err != nil {
			return time.Time{}, err
		}
	}
}

func datePortion(value string) string {
	if len(value) >= len(datetime.LayoutDate) && strings.ContainsRune(value, '-') {
		return value[:len(datetime.LayoutDate)]
	}
	return ""
}

func timePortion(value string) string {
	if idx := strings.IndexRune(value, 'T'); idx >= 0 {
		return value[idx+1:]
	}
	return ""
}
