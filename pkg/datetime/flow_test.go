package datetime

import "testing"

func TestFlow_DateTimeStages(t *testing.T) {
	cons, err := ParseConstraints(ConstraintStrings{
		MinDate: "2024-01-01", MaxDate: "2024-12-31",
		MinTime: "09:00", MaxTime: "17:00",
	})
	if err != nil {
		t.Fatalf("parse constraints: %v", err)
	}

	flow := NewFlow(ModeDateTime, cons, "")
	if flow.Stage() != StageIdle {
		t.Fatalf("new flow should be idle, got %v", flow.Stage())
	}

	if got := flow.Begin(); got != StageDate {
		t.Fatalf("datetime flow should open the date picker first, got %v", got)
	}

	ok, msg := flow.OfferDate(mustDate(t, "2024-06-15"))
	if !ok || msg != "" {
		t.Fatalf("valid date rejected: ok=%v msg=%q", ok, msg)
	}
	if flow.Stage() != StageTime {
		t.Fatalf("accepted date should advance to the time stage, got %v", flow.Stage())
	}

	ok, msg = flow.OfferTime(mustTime(t, "14:30"))
	if !ok || msg != "" {
		t.Fatalf("valid time rejected: ok=%v msg=%q", ok, msg)
	}
	if flow.Stage() != StageIdle {
		t.Fatalf("completed flow should be idle, got %v", flow.Stage())
	}

	value, committed := flow.Value()
	if !committed || value != "2024-06-15T14:30" {
		t.Fatalf("unexpected committed value %q (committed=%v)", value, committed)
	}
}

func TestFlow_DateRejectionNamesBounds(t *testing.T) {
	cons, err := ParseConstraints(ConstraintStrings{MinDate: "2024-01-01", MaxDate: "2024-12-31"})
	if err != nil {
		t.Fatalf("parse constraints: %v", err)
	}

	flow := NewFlow(ModeDate, cons, "")
	flow.Begin()
	ok, msg := flow.OfferDate(mustDate(t, "2023-12-25"))
	if ok {
		t.Fatal("out-of-window date must be rejected")
	}
	if want := "Date must be between Jan 1, 2024 and Dec 31, 2024"; msg != want {
		t.Fatalf("message = %q, want %q", msg, want)
	}
	if flow.Stage() != StageIdle {
		t.Fatalf("rejection should dismiss the picker, got stage %v", flow.Stage())
	}
	if _, committed := flow.Value(); committed {
		t.Fatal("rejected candidate must not commit a value")
	}

	// A later pass with a valid candidate commits normally.
	flow.Begin()
	if ok, _ := flow.OfferDate(mustDate(t, "2024-06-15")); !ok {
		t.Fatal("in-window date rejected")
	}
	if value, committed := flow.Value(); !committed || value != "2024-06-15" {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestFlow_TimeRejectedBeforeCombining(t *testing.T) {
	cons, err := ParseConstraints(ConstraintStrings{MinTime: "09:00", MaxTime: "17:00"})
	if err != nil {
		t.Fatalf("parse constraints: %v", err)
	}

	flow := NewFlow(ModeDateTime, cons, "")
	flow.Begin()
	if ok, _ := flow.OfferDate(mustDate(t, "2024-06-15")); !ok {
		t.Fatal("unconstrained date rejected")
	}
	ok, msg := flow.OfferTime(mustTime(t, "20:00"))
	if ok {
		t.Fatal("out-of-window time must be rejected")
	}
	if want := "Time must be between 09:00 and 17:00"; msg != want {
		t.Fatalf("message = %q, want %q", msg, want)
	}
	if _, committed := flow.Value(); committed {
		t.Fatal("rejected time must leave the value uncommitted")
	}
}

func TestFlow_CancelAtEitherStage(t *testing.T) {
	flow := NewFlow(ModeDateTime, Constraints{}, "")

	flow.Begin()
	flow.Cancel()
	if flow.Stage() != StageIdle {
		t.Fatalf("cancel at date stage should idle the flow, got %v", flow.Stage())
	}

	flow.Begin()
	if ok, _ := flow.OfferDate(mustDate(t, "2024-06-15")); !ok {
		t.Fatal("date rejected")
	}
	flow.Cancel()
	if flow.Stage() != StageIdle {
		t.Fatalf("cancel at time stage should idle the flow, got %v", flow.Stage())
	}
	if _, committed := flow.Value(); committed {
		t.Fatal("cancel must not commit a value")
	}

	// Offers outside an active stage are ignored.
	if ok, _ := flow.OfferTime(mustTime(t, "10:00")); ok {
		t.Fatal("offer against an idle flow must be ignored")
	}
}

func TestFlow_TimeModeSkipsDateStage(t *testing.T) {
	flow := NewFlow(ModeTime, Constraints{}, "")
	if got := flow.Begin(); got != StageTime {
		t.Fatalf("time flow should open the time picker, got %v", got)
	}
	if ok, _ := flow.OfferTime(mustTime(t, "08:05")); !ok {
		t.Fatal("unconstrained time rejected")
	}
	if value, committed := flow.Value(); !committed || value != "08:05" {
		t.Fatalf("unexpected value %q", value)
	}
}
