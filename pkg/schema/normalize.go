package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/datetime"
)

// Defaults applied when a property is absent from the wire descriptor.
const (
	DefaultMinInkPoints  = 10
	DefaultMaxImages     = 5
	DefaultMaxFileSizeMB = 10
	DefaultTimeoutMs     = 15000
)

// NormalizeOption adjusts the defaults applied while coercing properties.
// Client-wide settings enter normalization here; per-field properties always
// win over them.
type NormalizeOption func(*normalizeDefaults)

type normalizeDefaults struct {
	locationTimeoutMs int
	noAddressLookup   bool
}

// WithLocationTimeoutDefault replaces the built-in position timeout for
// location fields whose descriptor carries no timeout of its own. Values at
// or below zero are ignored.
func WithLocationTimeoutDefault(ms int) NormalizeOption {
	return func(d *normalizeDefaults) {
		if ms > 0 {
			d.locationTimeoutMs = ms
		}
	}
}

// WithoutAddressResolution switches reverse geocoding off for every location
// field, regardless of what the descriptors request.
func WithoutAddressResolution() NormalizeOption {
	return func(d *normalizeDefaults) {
		d.noAddressLookup = true
	}
}

// Normalize sorts descriptors by order, validates id/order uniqueness and
// coerces every stringly property into its typed form. The result is
// immutable for the lifetime of the form.
func Normalize(descriptors []FieldDescriptor, opts ...NormalizeOption) (Schema, error) {
	defaults := normalizeDefaults{locationTimeoutMs: DefaultTimeoutMs}
	for _, opt := range opts {
		opt(&defaults)
	}

	fields := make([]Field, 0, len(descriptors))
	seenOrder := make(map[int]string, len(descriptors))
	byID := make(map[string]int, len(descriptors))

	for _, desc := range descriptors {
		if strings.TrimSpace(desc.FieldID) == "" {
			return Schema{}, fmt.Errorf("schema: descriptor with empty fieldId (order %d)", desc.Order)
		}
		if prior, dup := seenOrder[desc.Order]; dup {
			return Schema{}, fmt.Errorf("schema: duplicate order %d (%s, %s)", desc.Order, prior, desc.FieldID)
		}
		seenOrder[desc.Order] = desc.FieldID
		if _, dup := byID[desc.FieldID]; dup {
			return Schema{}, fmt.Errorf("schema: duplicate fieldId %q", desc.FieldID)
		}

		field, err := normalizeField(desc, defaults)
		if err != nil {
			return Schema{}, err
		}
		byID[desc.FieldID] = 0 // reindexed after sorting
		fields = append(fields, field)
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })
	for idx, field := range fields {
		byID[field.FieldID] = idx
	}

	return Schema{fields: fields, byID: byID}, nil
}

func normalizeField(desc FieldDescriptor, defaults normalizeDefaults) (Field, error) {
	props := properties(desc.Properties)

	field := Field{
		FieldID:      desc.FieldID,
		Type:         ParseTypeCode(desc.TypeCode),
		WireType:     desc.TypeCode,
		Order:        desc.Order,
		Label:        sanitizeText(props.str("label", desc.FieldID)),
		Help:         sanitizeText(props.str("helpText", "")),
		Placeholder:  props.str("placeholder", ""),
		Required:     props.boolean("required", false),
		DefaultValue: props.str("defaultValue", ""),
	}

	switch field.Type {
	case TypeDate:
		field.Mode = datetime.ParseMode(props.str("mode", ""))
		cons, err := datetime.ParseConstraints(datetime.ConstraintStrings{
			MinDate: props.str("minimumDate", ""),
			MaxDate: props.str("maximumDate", ""),
			MinTime: props.str("minimumTime", ""),
			MaxTime: props.str("maximumTime", ""),
		})
		if err != nil {
			return Field{}, fmt.Errorf("schema: field %q: %w", desc.FieldID, err)
		}
		field.Constraints = cons

	case TypeDropdown:
		field.Dropdown = DropdownProps{
			Options:       ParseOptions(props.str("options", "")),
			MultiSelect:   props.boolean("multiSelect", false),
			MaxSelections: props.integer("maxSelections", 0),
			AllowAll:      props.boolean("allowSelectAll", false),
		}

	case TypeImage:
		field.Image = ImageProps{
			MaxFileSizeMB: props.integer("maxFileSize", DefaultMaxFileSizeMB),
			MaxImages:     props.integer("maxImages", DefaultMaxImages),
		}

	case TypeLocation:
		field.Location = LocationProps{
			MinAccuracyMeters: props.float("minAccuracy", 0),
			HighAccuracy:      props.boolean("enableHighAccuracy", true),
			TimeoutMs:         props.integer("timeout", defaults.locationTimeoutMs),
			MaximumAgeMs:      props.integer("maximumAge", 0),
			ResolveAddress:    props.boolean("resolveAddress", true) && !defaults.noAddressLookup,
		}

	case TypeSignature:
		field.Signature = SignatureProps{
			MinInkPoints: props.integer("minPoints", DefaultMinInkPoints),
		}
	}

	return field, nil
}

// ParseOptions splits a delimited option string: records separated by ';',
// key and label split on '~'. Records without a '~' are dropped silently per
// the wire contract.
func ParseOptions(raw string) []Option {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var options []Option
	for _, record := range strings.Split(raw, ";") {
		key, label, ok := strings.Cut(record, "~")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		label = strings.TrimSpace(label)
		if key == "" {
			continue
		}
		if label == "" {
			label = key
		}
		options = append(options, Option{Key: key, Label: label})
	}
	return options
}

// properties wraps the raw map with coercion helpers so each property is
// decoded in exactly one place.
type properties map[string]string

func (p properties) str(key, fallback string) string {
	if value, ok := p[key]; ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func (p properties) boolean(key string, fallback bool) bool {
	value, ok := p[key]
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "true", "1":
		return true
	case "n", "no", "false", "0":
		return false
	default:
		return fallback
	}
}

func (p properties) integer(key string, fallback int) int {
	value, ok := p[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func (p properties) float(key string, fallback float64) float64 {
	value, ok := p[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}
