// Package fields maps schema type codes to interactive controllers. Each
// controller owns one capture flow: prompting, validating, and publishing the
// field's value.
package fields

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/location"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/signature"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/styling"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

// ErrNoImageSource is returned by the image controller when capture is
// requested without a configured source.
var ErrNoImageSource = errors.New("fields: no image source configured")

// ErrNoSignatureSource is returned by the signature controller when signing is
// requested without a configured source.
var ErrNoSignatureSource = errors.New("fields: no signature source configured")

// ImageCandidate is a picked file before it is admitted as an asset.
type ImageCandidate struct {
	URI           string
	MimeType      string
	FileName      string
	FileSizeBytes int64
	Width         int
	Height        int
}

// ImageSource hands out picked files. Pick returns io.EOF when the user
// declines to pick.
type ImageSource interface {
	Pick(ctx context.Context) (ImageCandidate, error)
}

// SignatureSource opens a pointer event stream for one signing pass. The
// channel closes when the user lifts off the surface for the last time.
type SignatureSource interface {
	Events(ctx context.Context) (<-chan signature.PointerEvent, error)
}

// Deps carries everything a controller needs for one field. Value holds the
// current stored value (nil when unset); OnValue publishes the replacement.
type Deps struct {
	Driver prompt.Driver
	Theme  styling.Theme
	State  *validation.FieldState
	Logger *zap.Logger

	Value   any
	OnValue func(any)

	Gate       *location.Gate
	Images     ImageSource
	Signatures SignatureSource
}

func (d Deps) publish(v any) {
	if d.OnValue != nil {
		d.OnValue(v)
	}
}

func (d Deps) logger() *zap.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return zap.NewNop()
}

// Controller runs the capture flow for one field. Implementations mark the
// field touched and evaluate it before returning; a non-nil error means the
// flow itself failed (aborted terminal, closed source), not that the value is
// invalid.
type Controller interface {
	Run(ctx context.Context, field schema.Field, deps Deps) error
}

// ControllerFunc adapts a function to the Controller interface.
type ControllerFunc func(ctx context.Context, field schema.Field, deps Deps) error

func (f ControllerFunc) Run(ctx context.Context, field schema.Field, deps Deps) error {
	return f(ctx, field, deps)
}
