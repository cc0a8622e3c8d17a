package fields

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/signature"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

// runSignature captures one signing pass through the pointer event source.
// Replacing an existing signature requires explicit confirmation before the
// stored value is dropped.
func runSignature(ctx context.Context, field schema.Field, deps Deps) error {
	existing, _ := deps.Value.(string)
	if existing != "" {
		replace, err := deps.Driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: field.Label + ": replace the saved signature?",
			Default: false,
		})
		if err != nil {
			return err
		}
		if !replace {
			deps.State.Touch()
			deps.State.Evaluate(existing)
			return nil
		}
	}

	sign, err := deps.Driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: field.Label + ": sign now?",
		Default: true,
		Help:    field.Help,
	})
	if err != nil {
		return err
	}
	deps.State.Touch()
	if !sign {
		deps.State.Evaluate(deps.Value)
		return nil
	}

	if deps.Signatures == nil {
		return ErrNoSignatureSource
	}
	events, err := deps.Signatures.Events(ctx)
	if err != nil {
		return fmt.Errorf("fields: open signature stream: %w", err)
	}

	pad := signature.NewPad(signature.PadOptions{
		MinInkPoints: field.Signature.MinInkPoints,
		Raster: signature.RasterOptions{
			Width:       deps.Theme.SignatureCanvasW,
			Height:      deps.Theme.SignatureCanvasH,
			StrokeWidth: deps.Theme.SignatureStrokeWidth,
			StrokeColor: deps.Theme.SignatureStroke,
			Background:  deps.Theme.SignatureBackground,
		},
	})
	pad.BeginSigning()
	if err := signature.Consume(ctx, events, pad.Builder()); err != nil {
		pad.CancelSigning()
		return err
	}

	uri, err := pad.Save()
	if err != nil {
		switch {
		case errors.Is(err, signature.ErrInsufficientInk):
			deps.State.Fail(validation.CodeMinInk, "Signature is too short, please sign again")
		default:
			deps.logger().Warn("signature save failed", zap.Error(err))
			deps.State.Fail(validation.CodeEncoding, "failed to capture signature")
		}
		return nil
	}

	deps.State.Clear()
	deps.publish(uri)
	deps.State.Evaluate(uri)
	return nil
}
