package fields

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

// ImageAsset is one admitted image attachment. Uploaded flips when the sync
// layer confirms the binary reached the server.
type ImageAsset struct {
	ID            string `json:"id"`
	URI           string `json:"uri"`
	MimeType      string `json:"mimeType"`
	FileName      string `json:"fileName"`
	FileSizeBytes int64  `json:"fileSizeBytes"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	CapturedAtISO string `json:"capturedAt"`
	Uploaded      bool   `json:"uploaded"`
}

// AdmitImage gates a picked file against the field's size cap and stamps it
// into an asset. The returned error carries the operator-facing message.
func AdmitImage(props schema.ImageProps, candidate ImageCandidate, now time.Time) (ImageAsset, error) {
	if props.MaxFileSizeMB > 0 {
		limit := int64(props.MaxFileSizeMB) * 1024 * 1024
		if candidate.FileSizeBytes > limit {
			return ImageAsset{}, fmt.Errorf("file exceeds the %d MB limit", props.MaxFileSizeMB)
		}
	}
	return ImageAsset{
		ID:            uuid.NewString(),
		URI:           candidate.URI,
		MimeType:      candidate.MimeType,
		FileName:      candidate.FileName,
		FileSizeBytes: candidate.FileSizeBytes,
		Width:         candidate.Width,
		Height:        candidate.Height,
		CapturedAtISO: now.UTC().Format(time.RFC3339),
	}, nil
}

// runImage keeps offering capture until the cap is hit or the operator stops.
// Oversized picks record an issue but leave already-admitted assets alone.
func runImage(ctx context.Context, field schema.Field, deps Deps) error {
	assets := imageAssets(deps.Value)
	props := field.Image

	for props.MaxImages <= 0 || len(assets) < props.MaxImages {
		add, err := deps.Driver.Confirm(ctx, prompt.ConfirmConfig{
			Message: addImageMessage(field.Label, len(assets), props.MaxImages),
			Default: len(assets) == 0,
			Help:    field.Help,
		})
		if err != nil {
			return err
		}
		deps.State.Touch()
		if !add {
			break
		}

		if deps.Images == nil {
			return ErrNoImageSource
		}
		candidate, err := deps.Images.Pick(ctx)
		if errors.Is(err, io.EOF) {
			continue
		}
		if err != nil {
			return fmt.Errorf("fields: pick image: %w", err)
		}

		asset, err := AdmitImage(props, candidate, time.Now())
		if err != nil {
			deps.State.Fail(validation.CodeFileSize, err.Error())
			continue
		}
		deps.State.Clear()
		assets = append(assets, asset)
	}

	deps.State.Touch()
	publishAssets(deps, assets)
	return nil
}

func publishAssets(deps Deps, assets []ImageAsset) {
	if len(assets) == 0 {
		deps.publish(nil)
		deps.State.Evaluate(nil)
		return
	}
	deps.publish(assets)
	deps.State.Evaluate(assets)
}

func imageAssets(value any) []ImageAsset {
	assets, _ := value.([]ImageAsset)
	return assets
}

func addImageMessage(label string, have, max int) string {
	if max > 0 {
		return fmt.Sprintf("%s: add a photo? (%d of %d)", label, have, max)
	}
	return fmt.Sprintf("%s: add a photo? (%d attached)", label, have)
}
