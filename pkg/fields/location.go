package fields

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/location"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

// runLocation captures through the gate first and falls back to manual
// coordinate entry when the device cannot deliver a position. The stored
// value is the encoded sample; empty string means nothing captured.
func runLocation(ctx context.Context, field schema.Field, deps Deps) error {
	capture, err := deps.Driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: field.Label + ": capture current position?",
		Default: true,
		Help:    field.Help,
	})
	if err != nil {
		return err
	}
	deps.State.Touch()
	if !capture {
		deps.State.Evaluate(deps.Value)
		return nil
	}

	if deps.Gate != nil {
		done, err := captureViaGate(ctx, field, deps)
		if err != nil || done {
			return err
		}
	}
	return manualEntry(ctx, field, deps)
}

// captureViaGate returns done=true when a sample was stored; done=false hands
// the flow to manual entry.
func captureViaGate(ctx context.Context, field schema.Field, deps Deps) (bool, error) {
	props := field.Location
	result, err := deps.Gate.Capture(ctx, location.CaptureOptions{
		Position: location.PositionOptions{
			EnableHighAccuracy: props.HighAccuracy,
			Timeout:            time.Duration(props.TimeoutMs) * time.Millisecond,
			MaximumAge:         time.Duration(props.MaximumAgeMs) * time.Millisecond,
		},
		MinAccuracyMeters: props.MinAccuracyMeters,
		ResolveAddress:    props.ResolveAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, location.ErrPermissionDenied):
			deps.State.Fail(validation.CodePermission, "Location permission denied")
		case errors.Is(err, location.ErrCaptureTimeout):
			deps.State.Fail(validation.CodeCaptureTimeout, "Timed out waiting for a position fix")
		case errors.Is(err, location.ErrPositionUnavailable):
			deps.State.Fail(validation.CodePositionUnavailable, "Position unavailable")
		default:
			return false, err
		}
		return false, nil
	}

	if !result.Accurate {
		deps.State.Fail(validation.CodeAccuracy,
			fmt.Sprintf("accuracy %.0fm exceeds required %.0fm",
				result.Sample.AccuracyMeters, props.MinAccuracyMeters))
	} else {
		deps.State.Clear()
	}
	return true, storeSample(deps, result.Sample)
}

func manualEntry(ctx context.Context, field schema.Field, deps Deps) error {
	manual, err := deps.Driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: field.Label + ": enter coordinates manually?",
		Default: true,
	})
	if err != nil {
		return err
	}
	if !manual {
		deps.State.Evaluate(deps.Value)
		return nil
	}

	latitude, err := coordinateInput(ctx, deps, "Latitude", -90, 90)
	if err != nil {
		return err
	}
	longitude, err := coordinateInput(ctx, deps, "Longitude", -180, 180)
	if err != nil {
		return err
	}

	var sample location.Sample
	if deps.Gate != nil {
		sample, err = deps.Gate.ManualEntry(latitude, longitude)
	} else {
		sample, err = location.ManualSample(latitude, longitude, time.Now())
	}
	if err != nil {
		deps.State.Fail(validation.CodeCoordinateRange, err.Error())
		return nil
	}

	deps.State.Clear()
	return storeSample(deps, sample)
}

// coordinateInput loops until the answer is a number within the closed range.
// Range checks happen before any sample is constructed. The same check is
// handed to the driver as an inline validator; the loop stays the backstop for
// drivers that do not enforce it.
func coordinateInput(ctx context.Context, deps Deps, name string, min, max float64) (float64, error) {
	validate := coordinateValidator(name, min, max)
	for {
		raw, err := deps.Driver.Input(ctx, prompt.InputConfig{
			Message:     name,
			Placeholder: fmt.Sprintf("%.0f to %.0f", min, max),
			Validator:   validate,
		})
		if err != nil {
			return 0, err
		}
		if err := validate(raw); err != nil {
			if err := deps.Driver.Info(ctx, err.Error()); err != nil {
				return 0, err
			}
			continue
		}
		value, _ := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return value, nil
	}
}

// coordinateValidator rejects answers that are not a number within the closed
// [min, max] range.
func coordinateValidator(name string, min, max float64) func(string) error {
	return func(raw string) error {
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || value < min || value > max {
			return fmt.Errorf("%s must be a number between %.0f and %.0f", name, min, max)
		}
		return nil
	}
}

func storeSample(deps Deps, sample location.Sample) error {
	encoded, err := sample.Encode()
	if err != nil {
		deps.State.Fail(validation.CodeEncoding, "failed to store location")
		return nil
	}
	deps.publish(encoded)
	deps.State.Evaluate(encoded)
	return nil
}
