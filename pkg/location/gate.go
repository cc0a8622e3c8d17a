package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a position request when the caller supplies none.
const DefaultTimeout = 15 * time.Second

const geocodeTimeout = 5 * time.Second

// CaptureOptions configure one capture attempt.
type CaptureOptions struct {
	Position PositionOptions
	// MinAccuracyMeters flags samples whose reported accuracy is worse.
	// Zero disables the check.
	MinAccuracyMeters float64
	// ResolveAddress enables best-effort reverse geocoding.
	ResolveAddress bool
}

// Result is a completed capture. The sample is always populated on success;
// Accurate is false when the reading missed the configured threshold; the
// sample is still stored and the caller flags the field instead.
type Result struct {
	Sample   Sample
	Tier     Tier
	Accurate bool
}

// Gate sequences a position capture: permission, a single bounded sample,
// accuracy classification and optional address enrichment.
type Gate struct {
	provider Provider
	geocoder Geocoder
	logger   *zap.Logger
	now      func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGeocoder attaches a reverse geocoder for address enrichment.
func WithGeocoder(geocoder Geocoder) GateOption {
	return func(g *Gate) {
		g.geocoder = geocoder
	}
}

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGate constructs a Gate around the platform provider.
func NewGate(provider Provider, options ...GateOption) (*Gate, error) {
	if provider == nil {
		return nil, errors.New("location: provider is required")
	}
	g := &Gate{
		provider: provider,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

// Capture runs the full capture sequence. There is no hard cancellation of
// an in-flight platform request: the timeout is the only bound, and a result
// arriving after the deadline is discarded in favor of the timeout error.
func (g *Gate) Capture(ctx context.Context, opts CaptureOptions) (Result, error) {
	if err := g.provider.RequestPermission(ctx); err != nil {
		g.logger.Warn("location permission denied", zap.Error(err))
		if errors.Is(err, ErrPermissionDenied) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}

	timeout := opts.Position.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
		opts.Position.Timeout = timeout
	}
	posCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		position Position
		err      error
	}
	// Buffered so a late-arriving result never blocks the goroutine after
	// the deadline already won.
	results := make(chan outcome, 1)
	go func() {
		position, err := g.provider.CurrentPosition(posCtx, opts.Position)
		select {
		case results <- outcome{position: position, err: err}:
		default:
		}
		if posCtx.Err() != nil && err == nil {
			g.logger.Debug("discarding position delivered after deadline",
				zap.Float64("latitude", position.Latitude),
				zap.Float64("longitude", position.Longitude))
		}
	}()

	var position Position
	select {
	case <-posCtx.Done():
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		g.logger.Warn("position request timed out", zap.Duration("timeout", timeout))
		return Result{}, ErrCaptureTimeout
	case out := <-results:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				return Result{}, ErrCaptureTimeout
			}
			g.logger.Warn("position unavailable", zap.Error(out.err))
			return Result{}, fmt.Errorf("%w: %v", ErrPositionUnavailable, out.err)
		}
		position = out.position
	}

	capturedAt := position.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = g.now()
	}
	sample := Sample{
		Latitude:          position.Latitude,
		Longitude:         position.Longitude,
		AccuracyMeters:    position.AccuracyMeters,
		Altitude:          position.Altitude,
		Heading:           position.Heading,
		Speed:             position.Speed,
		CapturedAtEpochMs: capturedAt.UnixMilli(),
	}

	result := Result{
		Sample:   sample,
		Tier:     ClassifyAccuracy(position.AccuracyMeters),
		Accurate: opts.MinAccuracyMeters <= 0 || position.AccuracyMeters <= opts.MinAccuracyMeters,
	}

	if opts.ResolveAddress && g.geocoder != nil {
		geoCtx, cancelGeo := context.WithTimeout(ctx, geocodeTimeout)
		defer cancelGeo()
		address, err := g.geocoder.ReverseGeocode(geoCtx, sample.Latitude, sample.Longitude)
		if err != nil {
			// Enrichment only; the capture stands without an address.
			g.logger.Debug("reverse geocode failed", zap.Error(err))
		} else if address != "" {
			result.Sample.Address = &address
		}
	}

	g.logger.Info("position captured",
		zap.Float64("accuracyMeters", sample.AccuracyMeters),
		zap.String("tier", string(result.Tier)),
		zap.Bool("accurate", result.Accurate))
	return result, nil
}

// ManualEntry validates explicit coordinates and builds a manual sample.
// Range checks run before any sample exists; manual samples are exempt from
// the accuracy gate.
func (g *Gate) ManualEntry(latitude, longitude float64) (Sample, error) {
	return ManualSample(latitude, longitude, g.now())
}

// ManualSample is the provider-independent manual entry constructor.
func ManualSample(latitude, longitude float64, at time.Time) (Sample, error) {
	if latitude < -90 || latitude > 90 {
		return Sample{}, fmt.Errorf("%w: %v", ErrLatitudeRange, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Sample{}, fmt.Errorf("%w: %v", ErrLongitudeRange, longitude)
	}
	return Sample{
		Latitude:          latitude,
		Longitude:         longitude,
		CapturedAtEpochMs: at.UnixMilli(),
		IsManualEntry:     true,
	}, nil
}
