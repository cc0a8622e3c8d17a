// Package openapi projects an OpenAPI operation's request body into the wire
// field descriptors the schema layer normalizes. Servers that already publish
// an OpenAPI contract get a form definition for free; capture-specific
// settings ride along as x-survey-* extensions.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgschema "github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
)

// Extension keys recognized on property schemas.
const (
	extensionNamespace = "x-survey"
	typeExtensionKey   = "x-survey-type"
	orderExtensionKey  = "x-survey-order"
)

// Options configure document loading.
type Options struct {
	// ResolveReferences validates the document and resolves external refs.
	ResolveReferences bool
}

// Adapter extracts field descriptors from a loaded document.
type Adapter struct {
	options Options
}

// New constructs an Adapter.
func New(options Options) *Adapter {
	return &Adapter{options: options}
}

// Descriptors loads the document and projects the named operation's JSON
// request body into wire descriptors, ready for schema.Normalize.
func (a *Adapter) Descriptors(ctx context.Context, raw []byte, operationID string) ([]pkgschema.FieldDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: a.options.ResolveReferences,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if a.options.ResolveReferences {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	operation, err := findOperation(doc, operationID)
	if err != nil {
		return nil, err
	}

	body := requestBodySchema(operation.RequestBody)
	if body == nil {
		return nil, fmt.Errorf("openapi: operation %q has no JSON request body", operationID)
	}

	return descriptorsFromSchema(body)
}

func findOperation(doc *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if doc.Paths == nil {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		} {
			if operation != nil && operation.OperationID == operationID {
				return operation, nil
			}
		}
	}
	return nil, fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestBodySchema(ref *openapi3.RequestBodyRef) *openapi3.Schema {
	if ref == nil || ref.Value == nil {
		return nil
	}
	mt, ok := ref.Value.Content["application/json"]
	if !ok || mt.Schema == nil || mt.Schema.Value == nil {
		return nil
	}
	return mt.Schema.Value
}

func descriptorsFromSchema(body *openapi3.Schema) ([]pkgschema.FieldDescriptor, error) {
	if len(body.Properties) == 0 {
		return nil, errors.New("openapi: request body has no properties")
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	descriptors := make([]pkgschema.FieldDescriptor, 0, len(names))
	used := make(map[int]bool, len(names))
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		descriptor := descriptorFromProperty(name, ref.Value, required[name])
		if descriptor.Order != 0 {
			used[descriptor.Order] = true
		}
		descriptors = append(descriptors, descriptor)
	}
	// Properties without an explicit order slot into the gaps, keeping the
	// alphabetical fallback deterministic.
	next := 1
	for i := range descriptors {
		if descriptors[i].Order != 0 {
			continue
		}
		for used[next] {
			next++
		}
		descriptors[i].Order = next
		used[next] = true
	}
	return descriptors, nil
}

func descriptorFromProperty(name string, property *openapi3.Schema, required bool) pkgschema.FieldDescriptor {
	properties := map[string]string{}
	if property.Title != "" {
		properties["label"] = property.Title
	}
	if property.Description != "" {
		properties["helpText"] = property.Description
	}
	if property.Default != nil {
		properties["defaultValue"] = fmt.Sprintf("%v", property.Default)
	}
	if required {
		properties["required"] = "Y"
	}

	typeCode, order := applyExtensions(properties, property.Extensions)
	if typeCode == "" {
		typeCode = inferTypeCode(property, properties)
	}

	return pkgschema.FieldDescriptor{
		FieldID:    name,
		TypeCode:   typeCode,
		Order:      order,
		Properties: properties,
	}
}

// applyExtensions copies x-survey-* values into wire properties, stripping
// the namespace: x-survey-minAccuracy becomes minAccuracy.
func applyExtensions(properties map[string]string, extensions map[string]any) (typeCode string, order int) {
	for key, value := range extensions {
		switch {
		case key == typeExtensionKey:
			if s, ok := value.(string); ok {
				typeCode = s
			}
		case key == orderExtensionKey:
			switch v := value.(type) {
			case float64:
				order = int(v)
			case int:
				order = v
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			properties[strings.TrimPrefix(key, extensionNamespace+"-")] = fmt.Sprintf("%v", value)
		}
	}
	return typeCode, order
}

func inferTypeCode(property *openapi3.Schema, properties map[string]string) string {
	switch firstSchemaType(property.Type) {
	case "boolean":
		return "Checkbox"
	case "string":
		switch property.Format {
		case "date":
			return "Date"
		case "date-time":
			properties["mode"] = "datetime"
			return "Date"
		}
		if len(property.Enum) > 0 {
			properties["options"] = optionString(property.Enum)
			return "Dropdown"
		}
		return "Text"
	case "array":
		if property.Items != nil && property.Items.Value != nil && len(property.Items.Value.Enum) > 0 {
			properties["options"] = optionString(property.Items.Value.Enum)
			properties["multiSelect"] = "Y"
			return "Dropdown"
		}
	}
	return "Text"
}

// optionString renders enum values in the key~label;key~label wire form.
func optionString(enum []any) string {
	records := make([]string, 0, len(enum))
	for _, value := range enum {
		text := fmt.Sprintf("%v", value)
		if strings.TrimSpace(text) == "" {
			continue
		}
		records = append(records, text+"~"+text)
	}
	return strings.Join(records, ";")
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
