package signature

import (
	"errors"
	"fmt"
)

// DefaultMinInkPoints is the save gate: below this many captured points the
// drawing is treated as an accidental tap, not a signature.
const DefaultMinInkPoints = 10

// ErrInsufficientInk rejects a save whose captured point count is below the
// configured minimum.
var ErrInsufficientInk = errors.New("signature: not enough ink to save")

// Pad is the controller-facing capture state machine. Drawing is accepted
// only while the pad is in its signing sub-state; save, cancel and clear all
// leave it. Saving rasterizes and encodes the accumulated strokes; any
// failure aborts the save and leaves the previously saved value untouched.
type Pad struct {
	builder *Builder
	raster  RasterOptions
	minInk  int

	signing bool
	saved   string
}

// PadOptions configure a Pad.
type PadOptions struct {
	MinInkPoints      int
	StrokePointBudget int
	Raster            RasterOptions
}

// NewPad constructs an idle pad. Zero option fields select defaults.
func NewPad(opts PadOptions) *Pad {
	minInk := opts.MinInkPoints
	if minInk <= 0 {
		minInk = DefaultMinInkPoints
	}
	raster := opts.Raster
	if raster.Width <= 0 || raster.Height <= 0 {
		raster = DefaultRasterOptions()
	}
	return &Pad{
		builder: NewBuilder(opts.StrokePointBudget),
		raster:  raster,
		minInk:  minInk,
	}
}

// BeginSigning enters the signing sub-state, enabling gesture input.
func (p *Pad) BeginSigning() {
	p.signing = true
}

// Signing reports whether gesture input is currently accepted.
func (p *Pad) Signing() bool {
	return p.signing
}

// Builder exposes the stroke builder for the active gesture stream. Events
// arriving while not signing must be ignored by the caller; Consume together
// with BeginSigning/EndSigning enforces the window.
func (p *Pad) Builder() *Builder {
	return p.builder
}

// InkPoints reports the accumulated captured point count.
func (p *Pad) InkPoints() int {
	return p.builder.TotalPoints()
}

// Save finalizes any in-progress stroke, applies the minimum-ink gate,
// rasterizes the drawing and stores the encoded PNG data URI. On any failure
// the prior saved value (if any) is preserved. A committed save discards the
// drawing so the next signing pass starts with zero ink.
func (p *Pad) Save() (string, error) {
	p.builder.End()
	if total := p.builder.TotalPoints(); total < p.minInk {
		return "", fmt.Errorf("%w: %d of %d points", ErrInsufficientInk, total, p.minInk)
	}

	surface, err := Rasterize(p.builder.Strokes(), p.builder.Current(), p.raster)
	if err != nil {
		return "", err
	}
	uri, err := EncodeDataURI(surface)
	if err != nil {
		return "", err
	}

	p.saved = uri
	p.signing = false
	p.builder.Reset()
	return uri, nil
}

// CancelSigning leaves the signing sub-state, discarding the drawing but
// keeping any previously saved value.
func (p *Pad) CancelSigning() {
	p.builder.Reset()
	p.signing = false
}

// ClearDrawing resets only the in-progress drawing state, staying in the
// signing sub-state. Used by the on-canvas clear action.
func (p *Pad) ClearDrawing() {
	p.builder.Reset()
}

// ClearSaved removes the stored signature entirely. Callers must confirm
// with the user before invoking this on a saved value.
func (p *Pad) ClearSaved() {
	p.saved = ""
	p.builder.Reset()
	p.signing = false
}

// Saved returns the stored data URI; empty means no signature.
func (p *Pad) Saved() string {
	return p.saved
}
