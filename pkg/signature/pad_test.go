package signature

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"
)

func decodeBase64PNG(payload string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(raw))
}

func drawInk(pad *Pad, points int) {
	builder := pad.Builder()
	builder.Begin(Point{X: 0, Y: 0})
	for i := 1; i < points; i++ {
		builder.Move(Point{X: float64(i), Y: float64(i % 7)})
	}
	builder.End()
}

func TestPad_SaveRejectedBelowMinimumInk(t *testing.T) {
	pad := NewPad(PadOptions{MinInkPoints: 10})
	pad.BeginSigning()
	drawInk(pad, 4)

	uri, err := pad.Save()
	if !errors.Is(err, ErrInsufficientInk) {
		t.Fatalf("expected ErrInsufficientInk, got %v", err)
	}
	if uri != "" {
		t.Fatalf("rejected save must not produce a value, got %q", uri)
	}
	if pad.Saved() != "" {
		t.Fatal("rejected save must not commit")
	}
	if !strings.Contains(err.Error(), "4 of 10") {
		t.Fatalf("error should name measured vs required ink: %v", err)
	}
}

func TestPad_SaveProducesDataURI(t *testing.T) {
	pad := NewPad(PadOptions{MinInkPoints: 10})
	pad.BeginSigning()
	drawInk(pad, 30)

	uri, err := pad.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("value should be a PNG data URI, got %.40q", uri)
	}
	if len(uri) == len(prefix) {
		t.Fatal("payload is empty")
	}
	if pad.Signing() {
		t.Fatal("save should leave the signing sub-state")
	}
	if pad.Saved() != uri {
		t.Fatal("saved value not stored")
	}
	if pad.InkPoints() != 0 {
		t.Fatalf("save should discard the drawing, %d points remain", pad.InkPoints())
	}
}

func TestPad_ReplacementPassMeetsGateOnItsOwn(t *testing.T) {
	pad := NewPad(PadOptions{MinInkPoints: 10})
	pad.BeginSigning()
	drawInk(pad, 20)
	if _, err := pad.Save(); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// A fresh pass must not inherit the committed signature's ink.
	pad.BeginSigning()
	drawInk(pad, 4)
	_, err := pad.Save()
	if !errors.Is(err, ErrInsufficientInk) {
		t.Fatalf("expected ErrInsufficientInk for a 4-point replacement, got %v", err)
	}
	if !strings.Contains(err.Error(), "4 of 10") {
		t.Fatalf("gate should measure only the new pass: %v", err)
	}
}

func TestPad_SaveFailurePreservesPriorValue(t *testing.T) {
	pad := NewPad(PadOptions{MinInkPoints: 5})
	pad.BeginSigning()
	drawInk(pad, 20)
	prior, err := pad.Save()
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	// Second pass with too little ink: save aborts, prior value stands.
	pad.BeginSigning()
	drawInk(pad, 2)
	if _, err := pad.Save(); !errors.Is(err, ErrInsufficientInk) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if pad.Saved() != prior {
		t.Fatal("failed save must leave the prior committed value unchanged")
	}
}

func TestPad_RasterizeFailureAbortsSave(t *testing.T) {
	pad := NewPad(PadOptions{MinInkPoints: 2})
	pad.raster = RasterOptions{Width: 0, Height: 0}
	pad.BeginSigning()
	drawInk(pad, 10)

	if _, err := pad.Save(); !errors.Is(err, ErrEmptySurface) {
		t.Fatalf("expected surface failure, got %v", err)
	}
	if pad.Saved() != "" {
		t.Fatal("aborted save must not commit")
	}
}

func TestPad_ClearSemantics(t *testing.T) {
	pad := NewPad(PadOptions{MinInkPoints: 5})
	pad.BeginSigning()
	drawInk(pad, 20)
	if _, err := pad.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	pad.BeginSigning()
	drawInk(pad, 8)
	pad.ClearDrawing()
	if pad.InkPoints() != 0 {
		t.Fatal("clear while signing should reset the drawing")
	}
	if pad.Saved() == "" {
		t.Fatal("clear while signing must keep the saved value")
	}
	if !pad.Signing() {
		t.Fatal("on-canvas clear stays in the signing sub-state")
	}

	pad.ClearSaved()
	if pad.Saved() != "" {
		t.Fatal("explicit clear should remove the stored value")
	}
}

func TestRasterize_SurfaceAndInk(t *testing.T) {
	stroke := Stroke{{X: 10, Y: 10}, {X: 50, Y: 20}, {X: 90, Y: 10}}
	opts := RasterOptions{Width: 120, Height: 40, StrokeWidth: 4}
	surface, err := Rasterize([]Stroke{stroke}, nil, opts)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	bounds := surface.Bounds()
	if bounds.Dx() != 120 || bounds.Dy() != 40 {
		t.Fatalf("surface size %v", bounds)
	}

	// The stroke must have left dark pixels; the corners stay background.
	r, g, b, _ := surface.At(50, 17).RGBA()
	if r > 0x7fff && g > 0x7fff && b > 0x7fff {
		t.Fatal("expected ink along the stroke path")
	}
	r, g, b, _ = surface.At(1, 1).RGBA()
	if r < 0x7fff || g < 0x7fff || b < 0x7fff {
		t.Fatal("background corner should stay light")
	}

	uri, err := EncodeDataURI(surface)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	payload := strings.TrimPrefix(uri, "data:image/png;base64,")
	decoded, err := decodeBase64PNG(payload)
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded.Bounds().Dx() != 120 || decoded.Bounds().Dy() != 40 {
		t.Fatalf("decoded size %v", decoded.Bounds())
	}
}

func TestConsume_StreamDrivesBuilder(t *testing.T) {
	builder := NewBuilder(0)
	events := make(chan PointerEvent, 8)
	events <- PointerEvent{Kind: EventDown, Point: Point{X: 0, Y: 0}}
	events <- PointerEvent{Kind: EventMove, Point: Point{X: 1, Y: 1}}
	events <- PointerEvent{Kind: EventMove, Point: Point{X: 2, Y: 2}}
	events <- PointerEvent{Kind: EventUp}
	close(events)

	if err := Consume(context.Background(), events, builder); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if got := len(builder.Strokes()); got != 1 {
		t.Fatalf("expected 1 committed stroke, got %d", got)
	}
	if got := builder.TotalPoints(); got != 3 {
		t.Fatalf("total points = %d, want 3", got)
	}
}

func TestConsume_CancelMidStrokeDiscardsPartial(t *testing.T) {
	builder := NewBuilder(0)
	events := make(chan PointerEvent)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Consume(ctx, events, builder) }()

	events <- PointerEvent{Kind: EventDown, Point: Point{X: 0, Y: 0}}
	events <- PointerEvent{Kind: EventMove, Point: Point{X: 1, Y: 1}}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop on cancellation")
	}
	if got := len(builder.Strokes()); got != 0 {
		t.Fatalf("teardown mid-stroke must not commit, got %d strokes", got)
	}
	if builder.Current() != nil {
		t.Fatal("partial stroke should be discarded on teardown")
	}
}
