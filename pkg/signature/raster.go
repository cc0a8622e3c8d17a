package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/vector"
)

// RasterOptions configure the offscreen surface a signature is rendered to.
type RasterOptions struct {
	Width       int
	Height      int
	StrokeWidth float64
	StrokeColor color.Color
	Background  color.Color
}

// DefaultRasterOptions mirror the on-screen canvas defaults.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Width:       600,
		Height:      240,
		StrokeWidth: 3,
		StrokeColor: color.Black,
		Background:  color.White,
	}
}

// ErrEmptySurface is returned when the requested surface has no area.
var ErrEmptySurface = errors.New("signature: surface has no area")

const flattenSteps = 8

// Rasterize renders the background plus every stroke (committed and
// in-progress) onto an offscreen RGBA surface. Strokes are smoothed, then
// stroked as overlapping anti-aliased capsules, which yields round caps and
// joins.
func Rasterize(committed []Stroke, inProgress Stroke, opts RasterOptions) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrEmptySurface
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = DefaultRasterOptions().StrokeWidth
	}
	if opts.StrokeColor == nil {
		opts.StrokeColor = color.Black
	}
	if opts.Background == nil {
		opts.Background = color.White
	}

	surface := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(surface, surface.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	strokeSrc := image.NewUniform(opts.StrokeColor)
	radius := opts.StrokeWidth / 2

	paint := func(s Stroke) {
		points := Flatten(Smooth(s), flattenSteps)
		for i := 1; i < len(points); i++ {
			paintCapsule(surface, strokeSrc, points[i-1], points[i], radius)
		}
	}

	for _, s := range committed {
		paint(s)
	}
	if len(inProgress) >= 2 {
		paint(inProgress)
	}
	return surface, nil
}

// paintCapsule fills the capsule hull of segment a-b with radius r using an
// anti-aliased scanline rasterizer. Semicircular caps are approximated with
// two quadratic arcs each; adjacent capsules overlap, producing round joins.
func paintCapsule(dst *image.RGBA, src image.Image, a, b Point, r float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		dx, dy = 1, 0
	} else {
		dx, dy = dx/length, dy/length
	}
	// Unit normal.
	nx, ny := -dy, dx

	z := vector.NewRasterizer(dst.Bounds().Dx(), dst.Bounds().Dy())
	z.DrawOp = draw.Over

	moveTo := func(p Point) { z.MoveTo(float32(p.X), float32(p.Y)) }
	lineTo := func(p Point) { z.LineTo(float32(p.X), float32(p.Y)) }
	quadTo := func(c, p Point) { z.QuadTo(float32(c.X), float32(c.Y), float32(p.X), float32(p.Y)) }

	off := func(p Point, ux, uy, scale float64) Point {
		return Point{X: p.X + ux*scale, Y: p.Y + uy*scale}
	}

	start := off(a, nx, ny, r)
	moveTo(start)
	lineTo(off(b, nx, ny, r))
	// Cap around b: normal side -> direction side -> anti-normal side.
	quadTo(off(b, nx+dx, ny+dy, r), off(b, dx, dy, r))
	quadTo(off(b, dx-nx, dy-ny, r), off(b, -nx, -ny, r))
	lineTo(off(a, -nx, -ny, r))
	// Cap around a.
	quadTo(off(a, -nx-dx, -ny-dy, r), off(a, -dx, -dy, r))
	quadTo(off(a, nx-dx, ny-dy, r), start)
	z.ClosePath()

	z.Draw(dst, dst.Bounds(), src, image.Point{})
}

// EncodeDataURI snapshots the surface as a PNG and returns the embeddable
// base64 data URI.
func EncodeDataURI(surface image.Image) (string, error) {
	if surface == nil {
		return "", errors.New("signature: nil surface")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, surface); err != nil {
		return "", fmt.Errorf("signature: encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
