package surveyform

import (
	"context"

	"github.com/Md-Salehan/servey-app-v2-sub000/internal/openapi"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/session"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/values"
)

// Session aliases the session type so callers can stay on the root package.
type Session = session.Session

// Option aliases the session option type.
type Option = session.Option

// ErrAborted is returned when the operator aborts an interactive prompt.
var ErrAborted = session.ErrAborted

// LoadSchema fetches and normalizes a form definition from any schema source.
func LoadSchema(ctx context.Context, source schema.Source, opts ...schema.NormalizeOption) (schema.Schema, error) {
	return schema.Load(ctx, source, opts...)
}

// LoadSchemaFromOpenAPI projects an operation's request body from an OpenAPI
// document into a normalized form definition.
func LoadSchemaFromOpenAPI(ctx context.Context, document []byte, operationID string, opts ...schema.NormalizeOption) (schema.Schema, error) {
	descriptors, err := openapi.New(openapi.Options{}).Descriptors(ctx, document, operationID)
	if err != nil {
		return schema.Schema{}, err
	}
	return schema.Normalize(descriptors, opts...)
}

// NewSession builds a session over a normalized form.
func NewSession(form schema.Schema, options ...Option) *Session {
	return session.New(form, options...)
}

// Run walks the whole form once and assembles the submission. It is the
// simplest entry point for callers that want a single pass and the payload.
func Run(ctx context.Context, form schema.Schema, options ...Option) ([]values.Entry, error) {
	sess := session.New(form, options...)
	if err := sess.Run(ctx); err != nil {
		return nil, err
	}
	return sess.Submit()
}
