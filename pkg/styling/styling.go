// Package styling resolves the engine's visual configuration from go-theme
// manifests. The resolved Theme is plain data passed into controllers; there
// are no process-wide style singletons.
package styling

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Token keys recognized in a theme manifest.
const (
	TokenSignatureStroke      = "signature.stroke"
	TokenSignatureBackground  = "signature.background"
	TokenSignatureStrokeWidth = "signature.strokeWidth"
	TokenSignatureCanvasW     = "signature.canvasWidth"
	TokenSignatureCanvasH     = "signature.canvasHeight"
	TokenDateDisplayFormat    = "datetime.dateDisplay"
)

// Theme is the resolved visual configuration consumed by controllers.
type Theme struct {
	SignatureStroke      color.Color
	SignatureBackground  color.Color
	SignatureStrokeWidth float64
	SignatureCanvasW     int
	SignatureCanvasH     int
	// DateDisplayFormat names dates inside constraint messages; a Go time
	// layout string.
	DateDisplayFormat string
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		SignatureStroke:      color.Black,
		SignatureBackground:  color.White,
		SignatureStrokeWidth: 3,
		SignatureCanvasW:     600,
		SignatureCanvasH:     240,
		DateDisplayFormat:    "Jan 2, 2006",
	}
}

// FromManifest overlays manifest tokens onto the defaults. Unknown or
// malformed tokens are ignored in favor of the default value.
func FromManifest(manifest *theme.Manifest) Theme {
	resolved := Default()
	if manifest == nil || len(manifest.Tokens) == 0 {
		return resolved
	}
	tokens := manifest.Tokens

	if c, err := ParseHexColor(tokens[TokenSignatureStroke]); err == nil {
		resolved.SignatureStroke = c
	}
	if c, err := ParseHexColor(tokens[TokenSignatureBackground]); err == nil {
		resolved.SignatureBackground = c
	}
	if w, err := strconv.ParseFloat(tokens[TokenSignatureStrokeWidth], 64); err == nil && w > 0 {
		resolved.SignatureStrokeWidth = w
	}
	if v, err := strconv.Atoi(tokens[TokenSignatureCanvasW]); err == nil && v > 0 {
		resolved.SignatureCanvasW = v
	}
	if v, err := strconv.Atoi(tokens[TokenSignatureCanvasH]); err == nil && v > 0 {
		resolved.SignatureCanvasH = v
	}
	if layout := strings.TrimSpace(tokens[TokenDateDisplayFormat]); layout != "" {
		resolved.DateDisplayFormat = layout
	}
	return resolved
}

// Resolve asks a go-theme selector for the named theme/variant and maps its
// manifest tokens. An empty name yields the defaults without consulting the
// selector.
func Resolve(selector theme.ThemeSelector, name, variant string) (Theme, error) {
	if selector == nil || strings.TrimSpace(name) == "" {
		return Default(), nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return Theme{}, fmt.Errorf("styling: select theme %q: %w", name, err)
	}
	if selection == nil {
		return Default(), nil
	}
	return FromManifest(selection.Manifest), nil
}

// ParseHexColor decodes #RGB and #RRGGBB notations.
func ParseHexColor(raw string) (color.Color, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	parse := func(s string) (uint8, error) {
		v, err := strconv.ParseUint(s, 16, 8)
		return uint8(v), err
	}

	switch len(trimmed) {
	case 3:
		r, errR := parse(strings.Repeat(string(trimmed[0]), 2))
		g, errG := parse(strings.Repeat(string(trimmed[1]), 2))
		b, errB := parse(strings.Repeat(string(trimmed[2]), 2))
		if errR != nil || errG != nil || errB != nil {
			return nil, fmt.Errorf("styling: invalid color %q", raw)
		}
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	case 6:
		r, errR := parse(trimmed[0:2])
		g, errG := parse(trimmed[2:4])
		b, errB := parse(trimmed[4:6])
		if errR != nil || errG != nil || errB != nil {
			return nil, fmt.Errorf("styling: invalid color %q", raw)
		}
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	default:
		return nil, fmt.Errorf("styling: invalid color %q", raw)
	}
}
