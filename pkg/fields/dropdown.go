package fields

import (
	"context"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/prompt"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

const selectAllLabel = "Select all"

// ApplySelection toggles key within a multi-select set. A toggle that would
// push the set past MaxSelections is refused and the set returned unchanged.
func ApplySelection(props schema.DropdownProps, current []string, key string) ([]string, bool) {
	for i, selected := range current {
		if selected == key {
			next := make([]string, 0, len(current)-1)
			next = append(next, current[:i]...)
			next = append(next, current[i+1:]...)
			return next, true
		}
	}
	if props.MaxSelections > 0 && len(current) >= props.MaxSelections {
		return current, false
	}
	next := make([]string, 0, len(current)+1)
	next = append(next, current...)
	return append(next, key), true
}

// SelectAllEnabled reports whether the select-all affordance should be
// offered: never when the full option set would exceed the cap, and not when
// everything is already selected.
func SelectAllEnabled(props schema.DropdownProps, current []string) bool {
	if !props.AllowAll {
		return false
	}
	if props.MaxSelections > 0 && len(props.Options) > props.MaxSelections {
		return false
	}
	return len(current) < len(props.Options)
}

func runDropdown(ctx context.Context, field schema.Field, deps Deps) error {
	props := field.Dropdown
	labels := make([]string, len(props.Options))
	keys := make([]string, len(props.Options))
	for i, opt := range props.Options {
		labels[i] = opt.Label
		keys[i] = opt.Key
	}

	if !props.MultiSelect {
		return runSingleSelect(ctx, field, deps, labels, keys)
	}
	return runMultiSelect(ctx, field, deps, labels, keys)
}

func runSingleSelect(ctx context.Context, field schema.Field, deps Deps, labels, keys []string) error {
	currentKey, _ := deps.Value.(string)
	if currentKey == "" {
		currentKey = field.DefaultValue
	}
	defaultIdx := indexOfKey(keys, currentKey)

	idx, err := deps.Driver.Select(ctx, prompt.SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: defaultIdx,
		Help:         field.Help,
	})
	if err != nil {
		return err
	}

	deps.State.Touch()
	if idx < 0 || idx >= len(keys) {
		deps.State.Evaluate(deps.Value)
		return nil
	}
	deps.publish(keys[idx])
	deps.State.Evaluate(keys[idx])
	return nil
}

func runMultiSelect(ctx context.Context, field schema.Field, deps Deps, labels, keys []string) error {
	props := field.Dropdown
	current := stringSlice(deps.Value)

	options := labels
	allIdx := -1
	if SelectAllEnabled(props, current) {
		options = append(append([]string(nil), labels...), selectAllLabel)
		allIdx = len(options) - 1
	}

	defaults := make([]int, 0, len(current))
	for _, key := range current {
		if idx := indexOfKey(keys, key); idx >= 0 {
			defaults = append(defaults, idx)
		}
	}

	picked, err := deps.Driver.MultiSelect(ctx, prompt.SelectConfig{
		Message:  field.Label,
		Options:  options,
		Defaults: defaults,
		Help:     field.Help,
	})
	if err != nil {
		return err
	}

	deps.State.Touch()

	target := make(map[string]bool, len(picked))
	selectAll := false
	for _, idx := range picked {
		if idx == allIdx && allIdx >= 0 {
			selectAll = true
			continue
		}
		if idx >= 0 && idx < len(keys) {
			target[keys[idx]] = true
		}
	}
	if selectAll {
		for _, key := range keys {
			target[key] = true
		}
	}

	// Replay the end state as individual toggles so the cap applies to the
	// final set the same way it applies to one tap at a time.
	next := append([]string(nil), current...)
	for _, key := range current {
		if !target[key] {
			next, _ = ApplySelection(props, next, key)
		}
	}
	for _, key := range keys {
		if !target[key] || containsKey(next, key) {
			continue
		}
		applied, ok := ApplySelection(props, next, key)
		if !ok {
			deps.State.Failf(validation.CodeMaxSelections,
				"%s allows at most %d selections", field.Label, props.MaxSelections)
			return nil
		}
		next = applied
	}

	deps.publish(next)
	deps.State.Evaluate(next)
	return nil
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func indexOfKey(keys []string, key string) int {
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}

func containsKey(keys []string, key string) bool {
	return indexOfKey(keys, key) >= 0
}
