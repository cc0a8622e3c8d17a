package fields_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/fields"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/testsupport"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

func fruitField(multi bool, max int, allowAll bool) schema.Field {
	return schema.Field{
		FieldID: "fruit",
		Type:    schema.TypeDropdown,
		Label:   "Fruit",
		Dropdown: schema.DropdownProps{
			Options: []schema.Option{
				{Key: "A", Label: "Apple"},
				{Key: "B", Label: "Banana"},
				{Key: "C", Label: "Cherry"},
			},
			MultiSelect:   multi,
			MaxSelections: max,
			AllowAll:      allowAll,
		},
	}
}

func TestApplySelection(t *testing.T) {
	props := schema.DropdownProps{MaxSelections: 2}

	cases := []struct {
		name    string
		current []string
		key     string
		want    []string
		wantOK  bool
	}{
		{name: "toggle on", current: nil, key: "A", want: []string{"A"}, wantOK: true},
		{name: "toggle off", current: []string{"A", "B"}, key: "A", want: []string{"B"}, wantOK: true},
		{name: "at cap refused", current: []string{"A", "B"}, key: "C", want: []string{"A", "B"}, wantOK: false},
		{name: "removal always allowed at cap", current: []string{"A", "B"}, key: "B", want: []string{"A"}, wantOK: true},
	}
	for _, tc := range cases {
		got, ok := fields.ApplySelection(props, tc.current, tc.key)
		if ok != tc.wantOK {
			t.Errorf("%s: ok = %v, want %v", tc.name, ok, tc.wantOK)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s: selection mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestSelectAllEnabled(t *testing.T) {
	options := []schema.Option{{Key: "A"}, {Key: "B"}, {Key: "C"}}

	cases := []struct {
		name    string
		props   schema.DropdownProps
		current []string
		want    bool
	}{
		{name: "enabled", props: schema.DropdownProps{Options: options, AllowAll: true}, want: true},
		{name: "flag off", props: schema.DropdownProps{Options: options}, want: false},
		{name: "cap below option count", props: schema.DropdownProps{Options: options, AllowAll: true, MaxSelections: 2}, want: false},
		{name: "everything already selected", props: schema.DropdownProps{Options: options, AllowAll: true}, current: []string{"A", "B", "C"}, want: false},
	}
	for _, tc := range cases {
		if got := fields.SelectAllEnabled(tc.props, tc.current); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestDropdownSingle_PublishesKey(t *testing.T) {
	field := fruitField(false, 0, false)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "select", Index: 1},
	}}
	h := newHarness(field, driver)

	run(t, field, h)

	if h.value != "B" {
		t.Fatalf("value = %v, want B", h.value)
	}
}

func TestDropdownSingle_DismissKeepsValue(t *testing.T) {
	field := fruitField(false, 0, false)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "select", Index: -1},
	}}
	h := newHarness(field, driver)
	h.deps.Value = "C"

	run(t, field, h)

	if h.set {
		t.Fatalf("dismiss should not publish, got %v", h.value)
	}
}

func TestDropdownMulti_PublishesKeys(t *testing.T) {
	field := fruitField(true, 0, false)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "multiselect", Indices: []int{0, 2}},
	}}
	h := newHarness(field, driver)

	run(t, field, h)

	if diff := cmp.Diff([]string{"A", "C"}, h.value); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestDropdownMulti_CapExceededFlagsIssue(t *testing.T) {
	field := fruitField(true, 2, false)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "multiselect", Indices: []int{0, 1, 2}},
	}}
	h := newHarness(field, driver)

	run(t, field, h)

	if h.set {
		t.Fatalf("over-cap selection must not publish, got %v", h.value)
	}
	issue := h.state.Issue()
	if issue == nil || issue.Code != validation.CodeMaxSelections {
		t.Fatalf("expected max-selections issue, got %+v", issue)
	}
	if want := "Fruit allows at most 2 selections"; issue.Message != want {
		t.Fatalf("message = %q, want %q", issue.Message, want)
	}
}

func TestDropdownMulti_SelectAllExpands(t *testing.T) {
	field := fruitField(true, 0, true)
	// Option list gains a trailing "Select all" entry at index 3.
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "multiselect", Indices: []int{3}},
	}}
	h := newHarness(field, driver)

	run(t, field, h)

	if diff := cmp.Diff([]string{"A", "B", "C"}, h.value); diff != "" {
		t.Fatalf("select-all mismatch (-want +got):\n%s", diff)
	}
}
