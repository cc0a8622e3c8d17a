package location

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Sample is one captured position. Samples are immutable: a new capture
// builds a new Sample, never mutates an old one.
type Sample struct {
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	AccuracyMeters    float64  `json:"accuracyMeters"`
	Altitude          *float64 `json:"altitude"`
	Heading           *float64 `json:"heading"`
	Speed             *float64 `json:"speed"`
	CapturedAtEpochMs int64    `json:"capturedAtEpochMs"`
	Address           *string  `json:"address"`
	IsManualEntry     bool     `json:"isManualEntry"`
}

// Encode serializes the sample into its wire form. The stored field value is
// this JSON string; an empty string denotes "no location".
func (s Sample) Encode() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("location: encode sample: %w", err)
	}
	return string(raw), nil
}

// DecodeSample parses a wire sample string.
func DecodeSample(raw string) (Sample, error) {
	var s Sample
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Sample{}, fmt.Errorf("location: decode sample: %w", err)
	}
	return s, nil
}

// Tier is the coarse precision classification of a sample.
type Tier string

const (
	TierHigh     Tier = "High"
	TierGood     Tier = "Good"
	TierModerate Tier = "Moderate"
	TierLow      Tier = "Low"
)

// ClassifyAccuracy buckets a horizontal accuracy reading in meters.
func ClassifyAccuracy(meters float64) Tier {
	switch {
	case meters < 20:
		return TierHigh
	case meters < 100:
		return TierGood
	case meters < 500:
		return TierModerate
	default:
		return TierLow
	}
}
