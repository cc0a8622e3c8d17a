package values

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
)

// Entry is one submitted field in the outbound payload.
type Entry struct {
	FieldID  string          `json:"fieldId"`
	Value    any             `json:"value"`
	TypeCode schema.TypeCode `json:"typeCode"`
}

// ErrSubmissionBlocked is returned while any field holds an active issue.
type ErrSubmissionBlocked struct {
	Issues int
}

func (e ErrSubmissionBlocked) Error() string {
	return fmt.Sprintf("values: submission blocked by %d validation issue(s)", e.Issues)
}

// Assemble projects the value map into the ordered submission list. It
// refuses to assemble while the error map is non-empty: submission is all or
// nothing, never partial.
func Assemble(form schema.Schema, store *Store) ([]Entry, error) {
	if !store.Clean() {
		return nil, ErrSubmissionBlocked{Issues: len(store.Issues())}
	}

	entries := make([]Entry, 0, form.Len())
	for _, field := range form.Fields() {
		value, _ := store.Value(field.FieldID)
		entries = append(entries, Entry{
			FieldID:  field.FieldID,
			Value:    value,
			TypeCode: field.Type,
		})
	}
	return entries, nil
}

// EncodePayload serializes the submission for the transport layer.
func EncodePayload(entries []Entry) ([]byte, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("values: encode payload: %w", err)
	}
	return raw, nil
}
