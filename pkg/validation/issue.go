package validation

// Issue codes. Controllers attach one of these so aggregators can react to
// the kind of failure without parsing messages.
const (
	CodeRequired            = "required"
	CodeUnsupportedType     = "unsupported_type"
	CodeDateRange           = "date_range"
	CodeTimeRange           = "time_range"
	CodeAccuracy            = "accuracy"
	CodeMinInk              = "min_ink"
	CodeFileSize            = "file_size"
	CodeMaxSelections       = "max_selections"
	CodeCoordinateRange     = "coordinate_range"
	CodePermission          = "permission"
	CodeCaptureTimeout      = "capture_timeout"
	CodePositionUnavailable = "position_unavailable"
	CodeEncoding            = "encoding"
)

// Issue is a single active validation error for one field. At most one issue
// is active per field id; recording a new one overwrites the previous.
type Issue struct {
	FieldID string `json:"fieldId"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Sink is the side channel through which field state changes reach the
// aggregating screen. A nil issue clears the field's entry.
type Sink func(fieldID string, issue *Issue)
