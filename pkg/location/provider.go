package location

import (
	"context"
	"errors"
	"time"
)

// Position is a raw reading from the platform positioning source.
type Position struct {
	Latitude       float64
	Longitude      float64
	AccuracyMeters float64
	Altitude       *float64
	Heading        *float64
	Speed          *float64
	CapturedAt     time.Time
}

// PositionOptions are passed through to the platform request.
type PositionOptions struct {
	EnableHighAccuracy bool
	Timeout            time.Duration
	MaximumAge         time.Duration
}

// Provider abstracts the platform positioning service. Implementations live
// with the screens; the engine only sees this contract.
type Provider interface {
	// RequestPermission asks for the positioning permission. It returns
	// ErrPermissionDenied (possibly wrapped) when the user declines.
	RequestPermission(ctx context.Context) error
	// CurrentPosition obtains a single reading. Implementations should honor
	// ctx cancellation but are not required to; the gate enforces the
	// timeout regardless.
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

// Geocoder resolves a human-readable address for coordinates. Enrichment is
// best effort; failures never fail a capture.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}

// Failure kinds surfaced by the gate. Timeout and unavailable are distinct
// on purpose: they carry different user-facing remediation.
var (
	ErrPermissionDenied    = errors.New("location: permission denied")
	ErrCaptureTimeout      = errors.New("location: position request timed out")
	ErrPositionUnavailable = errors.New("location: position unavailable")
	ErrLatitudeRange       = errors.New("location: latitude out of range [-90, 90]")
	ErrLongitudeRange      = errors.New("location: longitude out of range [-180, 180]")
)
