// Package receipt renders a human-readable confirmation of an assembled
// submission, for printing or sharing after a successful sync.
package receipt

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/fields"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/location"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/values"
)

//go:embed templates/*.tpl
var builtinTemplates embed.FS

const defaultTemplate = "templates/receipt.tpl"

// Row is one printed line of the receipt.
type Row struct {
	Label string
	Value string
}

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates    fs.FS
	templateName string
}

// WithFS renders from a caller-provided template tree instead of the
// built-in one.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplate selects a template path within the tree.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(name) != "" {
			cfg.templateName = name
		}
	}
}

// Engine holds a parsed template set. Safe for concurrent Render calls.
type Engine struct {
	mu           sync.Mutex
	set          *pongo2.TemplateSet
	cache        map[string]*pongo2.Template
	templateName string
}

// NewEngine builds an engine over the embedded templates unless WithFS
// overrides them.
func NewEngine(options ...Option) (*Engine, error) {
	cfg := &config{
		templates:    builtinTemplates,
		templateName: defaultTemplate,
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	return &Engine{
		set:          pongo2.NewSet("receipt", pongo2.NewFSLoader(cfg.templates)),
		cache:        make(map[string]*pongo2.Template),
		templateName: cfg.templateName,
	}, nil
}

// Render produces the receipt text for an assembled submission.
func (e *Engine) Render(form schema.Schema, entries []values.Entry, generatedAt time.Time) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("receipt: engine is nil")
	}

	tmpl, err := e.template(e.templateName)
	if err != nil {
		return "", err
	}

	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		field, ok := form.Field(entry.FieldID)
		if !ok {
			continue
		}
		rows = append(rows, Row{Label: field.Label, Value: displayValue(field, entry.Value)})
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteWriter(pongo2.Context{
		"rows":        rows,
		"generatedAt": generatedAt.Format(time.RFC1123),
	}, &buf)
	if err != nil {
		return "", fmt.Errorf("receipt: execute template %q: %w", e.templateName, err)
	}
	return buf.String(), nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("receipt: load template %q: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

// displayValue flattens a stored value into receipt text. Unanswered fields
// print a dash rather than disappearing, so the receipt mirrors the form.
func displayValue(field schema.Field, value any) string {
	if value == nil {
		return "-"
	}

	switch field.Type {
	case schema.TypeCheckbox:
		if checked, ok := value.(bool); ok {
			if checked {
				return "Yes"
			}
			return "No"
		}
	case schema.TypeDropdown:
		return displayDropdown(field.Dropdown, value)
	case schema.TypeLocation:
		if encoded, ok := value.(string); ok && encoded != "" {
			if sample, err := location.DecodeSample(encoded); err == nil {
				return displaySample(sample)
			}
		}
	case schema.TypeSignature:
		if uri, ok := value.(string); ok && uri != "" {
			return "signed"
		}
	case schema.TypeImage:
		return displayAttachmentCount(value)
	}

	if text, ok := value.(string); ok {
		if text == "" {
			return "-"
		}
		return text
	}
	return fmt.Sprintf("%v", value)
}

func displayDropdown(props schema.DropdownProps, value any) string {
	labelOf := func(key string) string {
		for _, opt := range props.Options {
			if opt.Key == key {
				return opt.Label
			}
		}
		return key
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			return "-"
		}
		return labelOf(v)
	case []string:
		if len(v) == 0 {
			return "-"
		}
		labels := make([]string, len(v))
		for i, key := range v {
			labels[i] = labelOf(key)
		}
		return strings.Join(labels, ", ")
	}
	return fmt.Sprintf("%v", value)
}

func displaySample(sample location.Sample) string {
	out := fmt.Sprintf("%.5f, %.5f", sample.Latitude, sample.Longitude)
	if sample.IsManualEntry {
		return out + " (manual)"
	}
	if sample.Address != nil {
		return out + " " + *sample.Address
	}
	return fmt.Sprintf("%s (accuracy %.0fm)", out, sample.AccuracyMeters)
}

func displayAttachmentCount(value any) string {
	switch v := value.(type) {
	case []fields.ImageAsset:
		return fmt.Sprintf("%d attachment(s)", len(v))
	case []any:
		return fmt.Sprintf("%d attachment(s)", len(v))
	default:
		return fmt.Sprintf("%v", value)
	}
}
