package schema

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/datetime"
)

// TypeCode is the closed enumeration of field kinds the engine understands.
// Wire codes outside this set normalize to TypeUnknown so a single malformed
// field renders as a placeholder instead of blocking the form.
type TypeCode string

const (
	TypeText      TypeCode = "Text"
	TypeDate      TypeCode = "Date"
	TypeDropdown  TypeCode = "Dropdown"
	TypeCheckbox  TypeCode = "Checkbox"
	TypeImage     TypeCode = "Image"
	TypeLocation  TypeCode = "Location"
	TypeSignature TypeCode = "Signature"
	TypeUnknown   TypeCode = "Unknown"
)

// ParseTypeCode maps a wire type string onto the closed enum.
func ParseTypeCode(raw string) TypeCode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text":
		return TypeText
	case "date":
		return TypeDate
	case "dropdown":
		return TypeDropdown
	case "checkbox":
		return TypeCheckbox
	case "image":
		return TypeImage
	case "location":
		return TypeLocation
	case "signature":
		return TypeSignature
	default:
		return TypeUnknown
	}
}

// FieldDescriptor is the wire shape of one schema entry as received from the
// form-fetch API. Properties are string-typed on the wire and are coerced
// exactly once, by Normalize.
type FieldDescriptor struct {
	FieldID    string            `json:"fieldId"`
	TypeCode   string            `json:"typeCode"`
	Order      int               `json:"order"`
	Properties map[string]string `json:"properties"`
}

// DecodeDescriptors parses the raw descriptor array.
func DecodeDescriptors(raw []byte) ([]FieldDescriptor, error) {
	var descriptors []FieldDescriptor
	if err := json.Unmarshal(raw, &descriptors); err != nil {
		return nil, fmt.Errorf("schema: decode descriptors: %w", err)
	}
	return descriptors, nil
}

// Option is one parsed dropdown choice.
type Option struct {
	Key   string
	Label string
}

// DropdownProps carries the coerced dropdown configuration.
type DropdownProps struct {
	Options       []Option
	MultiSelect   bool
	MaxSelections int
	AllowAll      bool
}

// ImageProps carries the coerced image-capture configuration.
type ImageProps struct {
	MaxFileSizeMB int
	MaxImages     int
}

// LocationProps carries the coerced location-capture configuration.
type LocationProps struct {
	MinAccuracyMeters float64
	HighAccuracy      bool
	TimeoutMs         int
	MaximumAgeMs      int
	ResolveAddress    bool
}

// SignatureProps carries the coerced signature-capture configuration.
type SignatureProps struct {
	MinInkPoints int
}

// Field is the normalized, strongly typed form of a FieldDescriptor. All
// stringly properties have been decoded; controllers never re-parse.
type Field struct {
	FieldID      string
	Type         TypeCode
	WireType     string
	Order        int
	Label        string
	Help         string
	Placeholder  string
	Required     bool
	DefaultValue string

	Mode        datetime.Mode
	Constraints datetime.Constraints

	Dropdown  DropdownProps
	Image     ImageProps
	Location  LocationProps
	Signature SignatureProps
}

// Schema is an ordered, normalized field list. It is built once per form
// fetch and read-only thereafter.
type Schema struct {
	fields []Field
	byID   map[string]int
}

// Fields returns the fields in render/tab order.
func (s Schema) Fields() []Field {
	return s.fields
}

// Len reports the number of fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// Field looks a field up by id.
func (s Schema) Field(id string) (Field, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx], true
}
