package fields_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/fields"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/location"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/schema"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/signature"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/testsupport"
	"github.com/Md-Salehan/servey-app-v2-sub000/pkg/validation"
)

type fakeImageSource struct {
	candidates []fields.ImageCandidate
	cursor     int
}

func (s *fakeImageSource) Pick(context.Context) (fields.ImageCandidate, error) {
	if s.cursor >= len(s.candidates) {
		return fields.ImageCandidate{}, io.EOF
	}
	candidate := s.candidates[s.cursor]
	s.cursor++
	return candidate, nil
}

func imageField(maxSizeMB, maxImages int) schema.Field {
	return schema.Field{
		FieldID: "photos",
		Type:    schema.TypeImage,
		Label:   "Site photos",
		Image:   schema.ImageProps{MaxFileSizeMB: maxSizeMB, MaxImages: maxImages},
	}
}

func TestImageController_AdmitsPickedFiles(t *testing.T) {
	field := imageField(10, 3)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
		{Kind: "confirm", Confirm: true},
		{Kind: "confirm", Confirm: false},
	}}
	h := newHarness(field, driver)
	h.deps.Images = &fakeImageSource{candidates: []fields.ImageCandidate{
		{URI: "file:///a.jpg", MimeType: "image/jpeg", FileName: "a.jpg", FileSizeBytes: 2 << 20, Width: 640, Height: 480},
		{URI: "file:///b.jpg", MimeType: "image/jpeg", FileName: "b.jpg", FileSizeBytes: 1 << 20, Width: 640, Height: 480},
	}}

	run(t, field, h)

	assets, ok := h.value.([]fields.ImageAsset)
	if !ok || len(assets) != 2 {
		t.Fatalf("expected two assets, got %T %v", h.value, h.value)
	}
	if assets[0].FileName != "a.jpg" || assets[1].FileName != "b.jpg" {
		t.Fatalf("assets out of pick order: %v, %v", assets[0].FileName, assets[1].FileName)
	}
	if assets[0].ID == "" || assets[0].ID == assets[1].ID {
		t.Fatalf("asset ids must be unique and non-empty: %q vs %q", assets[0].ID, assets[1].ID)
	}
	if _, err := time.Parse(time.RFC3339, assets[0].CapturedAtISO); err != nil {
		t.Fatalf("capturedAt not RFC3339: %q", assets[0].CapturedAtISO)
	}
	if assets[0].Uploaded {
		t.Fatal("new assets must start un-uploaded")
	}
}

func TestImageController_OversizedPickFlagsIssue(t *testing.T) {
	field := imageField(1, 3)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
		{Kind: "confirm", Confirm: false},
	}}
	h := newHarness(field, driver)
	h.deps.Images = &fakeImageSource{candidates: []fields.ImageCandidate{
		{URI: "file:///big.jpg", FileName: "big.jpg", FileSizeBytes: 3 << 20},
	}}

	run(t, field, h)

	if h.value != nil {
		t.Fatalf("oversized pick must not produce assets, got %v", h.value)
	}
	issue := h.state.Issue()
	if issue == nil || issue.Code != validation.CodeFileSize {
		t.Fatalf("expected file-size issue, got %+v", issue)
	}
	if want := "file exceeds the 1 MB limit"; issue.Message != want {
		t.Fatalf("message = %q, want %q", issue.Message, want)
	}
}

func TestImageController_StopsAtCap(t *testing.T) {
	field := imageField(10, 1)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
	}}
	h := newHarness(field, driver)
	h.deps.Images = &fakeImageSource{candidates: []fields.ImageCandidate{
		{URI: "file:///a.jpg", FileName: "a.jpg", FileSizeBytes: 1024},
	}}

	run(t, field, h)

	assets, _ := h.value.([]fields.ImageAsset)
	if len(assets) != 1 {
		t.Fatalf("expected one asset, got %v", h.value)
	}
	if !driver.Exhausted() {
		t.Fatal("controller must stop prompting once the cap is reached")
	}
}

type fakeLocationProvider struct {
	permissionErr error
	position      location.Position
	positionErr   error
}

func (p *fakeLocationProvider) RequestPermission(context.Context) error {
	return p.permissionErr
}

func (p *fakeLocationProvider) CurrentPosition(context.Context, location.PositionOptions) (location.Position, error) {
	if p.positionErr != nil {
		return location.Position{}, p.positionErr
	}
	return p.position, nil
}

func locationField(minAccuracy float64) schema.Field {
	return schema.Field{
		FieldID:  "site",
		Type:     schema.TypeLocation,
		Label:    "Site location",
		Location: schema.LocationProps{MinAccuracyMeters: minAccuracy, TimeoutMs: 1000},
	}
}

func newLocationHarness(t *testing.T, field schema.Field, driver *testsupport.ScriptDriver, provider location.Provider) *harness {
	t.Helper()
	h := newHarness(field, driver)
	gate, err := location.NewGate(provider)
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	h.deps.Gate = gate
	return h
}

func TestLocationController_StoresSample(t *testing.T) {
	field := locationField(50)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
	}}
	provider := &fakeLocationProvider{position: location.Position{
		Latitude: 6.52, Longitude: 3.37, AccuracyMeters: 12,
	}}
	h := newLocationHarness(t, field, driver, provider)

	run(t, field, h)

	encoded, ok := h.value.(string)
	if !ok || encoded == "" {
		t.Fatalf("expected encoded sample, got %T %v", h.value, h.value)
	}
	sample, err := location.DecodeSample(encoded)
	if err != nil {
		t.Fatalf("decode stored sample: %v", err)
	}
	if sample.Latitude != 6.52 || sample.Longitude != 3.37 {
		t.Fatalf("coordinates lost: %+v", sample)
	}
	if sample.IsManualEntry {
		t.Fatal("device capture must not be marked manual")
	}
	if !h.state.Valid() {
		t.Fatalf("accurate sample should leave no issue, got %+v", h.state.Issue())
	}
}

func TestLocationController_InaccurateSampleStoredAndFlagged(t *testing.T) {
	field := locationField(20)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
	}}
	provider := &fakeLocationProvider{position: location.Position{
		Latitude: 6.52, Longitude: 3.37, AccuracyMeters: 85,
	}}
	h := newLocationHarness(t, field, driver, provider)

	run(t, field, h)

	if _, ok := h.value.(string); !ok {
		t.Fatalf("inaccurate sample must still be stored, got %T", h.value)
	}
	issue := h.state.Issue()
	if issue == nil || issue.Code != validation.CodeAccuracy {
		t.Fatalf("expected accuracy issue, got %+v", issue)
	}
	if want := "accuracy 85m exceeds required 20m"; issue.Message != want {
		t.Fatalf("message = %q, want %q", issue.Message, want)
	}
}

func TestLocationController_UnavailableFallsBackToManual(t *testing.T) {
	field := locationField(0)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true}, // capture
		{Kind: "confirm", Confirm: true}, // manual entry
		{Kind: "input", Input: "6.52"},
		{Kind: "input", Input: "3.37"},
	}}
	provider := &fakeLocationProvider{positionErr: location.ErrPositionUnavailable}
	h := newLocationHarness(t, field, driver, provider)

	run(t, field, h)

	encoded, ok := h.value.(string)
	if !ok {
		t.Fatalf("expected encoded sample, got %T", h.value)
	}
	sample, err := location.DecodeSample(encoded)
	if err != nil {
		t.Fatalf("decode stored sample: %v", err)
	}
	if !sample.IsManualEntry {
		t.Fatal("manual entry must be marked as such")
	}
	if !h.state.Valid() {
		t.Fatalf("manual entry should clear the capture issue, got %+v", h.state.Issue())
	}
}

func TestLocationController_ManualRangeRetries(t *testing.T) {
	field := locationField(0)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
		{Kind: "confirm", Confirm: true},
		{Kind: "input", Input: "95"},   // out of range, retried
		{Kind: "input", Input: "6.52"}, // latitude accepted
		{Kind: "input", Input: "3.37"}, // longitude
	}}
	provider := &fakeLocationProvider{positionErr: location.ErrPositionUnavailable}
	h := newLocationHarness(t, field, driver, provider)

	run(t, field, h)

	if len(driver.InfoLines) != 1 || !strings.Contains(driver.InfoLines[0], "between -90 and 90") {
		t.Fatalf("expected one latitude range hint, got %v", driver.InfoLines)
	}
	if _, ok := h.value.(string); !ok {
		t.Fatalf("expected stored sample after retry, got %T", h.value)
	}
}

func TestLocationController_ManualDeclinedKeepsIssue(t *testing.T) {
	field := locationField(0)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
		{Kind: "confirm", Confirm: false},
	}}
	provider := &fakeLocationProvider{positionErr: location.ErrPositionUnavailable}
	h := newLocationHarness(t, field, driver, provider)

	run(t, field, h)

	issue := h.state.Issue()
	if issue == nil || issue.Code != validation.CodePositionUnavailable {
		t.Fatalf("expected position-unavailable issue, got %+v", issue)
	}
}

type fakeSignatureSource struct {
	events []signature.PointerEvent
}

func (s *fakeSignatureSource) Events(context.Context) (<-chan signature.PointerEvent, error) {
	out := make(chan signature.PointerEvent, len(s.events))
	for _, ev := range s.events {
		out <- ev
	}
	close(out)
	return out, nil
}

func inkEvents(points int) []signature.PointerEvent {
	events := make([]signature.PointerEvent, 0, points+2)
	events = append(events, signature.PointerEvent{Kind: signature.EventDown, Point: signature.Point{X: 10, Y: 10}})
	for i := 1; i < points; i++ {
		events = append(events, signature.PointerEvent{
			Kind:  signature.EventMove,
			Point: signature.Point{X: 10 + float64(i)*3, Y: 10 + float64(i%5)},
		})
	}
	events = append(events, signature.PointerEvent{Kind: signature.EventUp})
	return events
}

func signatureField(minInk int) schema.Field {
	return schema.Field{
		FieldID:   "sig",
		Type:      schema.TypeSignature,
		Label:     "Signature",
		Signature: schema.SignatureProps{MinInkPoints: minInk},
	}
}

func TestSignatureController_SavesDataURI(t *testing.T) {
	field := signatureField(10)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
	}}
	h := newHarness(field, driver)
	h.deps.Signatures = &fakeSignatureSource{events: inkEvents(20)}

	run(t, field, h)

	uri, ok := h.value.(string)
	if !ok || !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("expected PNG data URI, got %T %.40v", h.value, h.value)
	}
	if !h.state.Valid() {
		t.Fatalf("unexpected issue: %+v", h.state.Issue())
	}
}

func TestSignatureController_TooLittleInk(t *testing.T) {
	field := signatureField(10)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: true},
	}}
	h := newHarness(field, driver)
	h.deps.Signatures = &fakeSignatureSource{events: inkEvents(4)}

	run(t, field, h)

	if h.set {
		t.Fatalf("short signature must not publish, got %v", h.value)
	}
	if issue := h.state.Issue(); issue == nil || issue.Code != validation.CodeMinInk {
		t.Fatalf("expected min-ink issue, got %+v", issue)
	}
}

func TestSignatureController_KeepSavedWhenReplaceDeclined(t *testing.T) {
	field := signatureField(10)
	driver := &testsupport.ScriptDriver{Steps: []testsupport.Step{
		{Kind: "confirm", Confirm: false}, // decline replacement
	}}
	h := newHarness(field, driver)
	h.deps.Value = "data:image/png;base64,AAAA"

	run(t, field, h)

	if h.set {
		t.Fatal("declining replacement must not publish")
	}
	if !driver.Exhausted() {
		t.Fatal("no further prompts expected after declining")
	}
}
