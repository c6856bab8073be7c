package engine

import (
	"reflect"
	"testing"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

func TestAnswerSet_SingleLastWriteWins(t *testing.T) {
	a := NewAnswerSet()

	a.SelectSingle("q1", "A")
	a.SelectSingle("q1", "C")

	label, ok := a.Single("q1")
	if !ok || label != "C" {
		t.Fatalf("expected C, got %q (ok=%v)", label, ok)
	}

	// Re-storing the same label is a no-op.
	a.SelectSingle("q1", "C")
	if label, _ := a.Single("q1"); label != "C" {
		t.Fatalf("repeat select changed the answer to %q", label)
	}
}

func TestAnswerSet_ToggleMultiInvolution(t *testing.T) {
	a := NewAnswerSet()

	if selected := a.ToggleMulti("q1", "B"); !selected {
		t.Fatal("first toggle should select")
	}
	if selected := a.ToggleMulti("q1", "B"); selected {
		t.Fatal("second toggle should deselect")
	}

	// The question was touched: an empty selection still counts as attempted.
	selection, ok := a.Multi("q1")
	if !ok {
		t.Fatal("expected the touched question to keep its entry")
	}
	if len(selection) != 0 {
		t.Fatalf("expected empty selection, got %v", selection)
	}

	q := &model.Question{ID: "q1", QuestionType: "multiple"}
	if !a.Attempted(q) {
		t.Fatal("emptied multi selection should still be attempted")
	}
}

func TestAnswerSet_ToggleMultiAccumulates(t *testing.T) {
	a := NewAnswerSet()

	a.ToggleMulti("q1", "A")
	a.ToggleMulti("q1", "C")
	a.ToggleMulti("q1", "B")
	a.ToggleMulti("q1", "C")

	selection, _ := a.Multi("q1")
	if !reflect.DeepEqual(selection, []string{"A", "B"}) {
		t.Fatalf("expected [A B], got %v", selection)
	}
}

func TestAnswerSet_SetMatchOverwritesOnlyKey(t *testing.T) {
	a := NewAnswerSet()

	a.SetMatch("q1", "l1", "r1")
	a.SetMatch("q1", "l2", "r2")
	a.SetMatch("q1", "l1", "r3")

	got := a.Matches("q1")
	want := map[string]string{"l1": "r3", "l2": "r2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAnswerSet_NoCrossPairingValidation(t *testing.T) {
	a := NewAnswerSet()

	// Two left items may point at the same right item; no error, no cleanup.
	a.SetMatch("q1", "l1", "r1")
	a.SetMatch("q1", "l2", "r1")

	got := a.Matches("q1")
	if got["l1"] != "r1" || got["l2"] != "r1" {
		t.Fatalf("duplicate right-item pairing was altered: %v", got)
	}
}

func TestAnswerSet_AttemptedPerType(t *testing.T) {
	a := NewAnswerSet()
	single := &model.Question{ID: "s", QuestionType: "single"}
	multi := &model.Question{ID: "m", QuestionType: "multiple"}
	matching := &model.Question{ID: "x", QuestionType: "matching"}

	if a.Attempted(single) || a.Attempted(multi) || a.Attempted(matching) {
		t.Fatal("fresh answer set should have no attempts")
	}

	a.SelectSingle("s", "A")
	a.ToggleMulti("m", "B")
	a.SetMatch("x", "l1", "r1")

	if !a.Attempted(single) || !a.Attempted(multi) || !a.Attempted(matching) {
		t.Fatal("all three question types should register as attempted")
	}
}

func TestAnswerSet_ViewMergesAndCopies(t *testing.T) {
	a := NewAnswerSet()
	a.SelectSingle("s", "A")
	a.ToggleMulti("m", "B")
	a.SetMatch("x", "l1", "r1")

	answers, matching := a.View()
	if !reflect.DeepEqual(answers["s"], []string{"A"}) {
		t.Fatalf("single answer missing from view: %v", answers)
	}
	if !reflect.DeepEqual(answers["m"], []string{"B"}) {
		t.Fatalf("multi answer missing from view: %v", answers)
	}

	// Mutating the view must not leak back.
	matching["x"]["l1"] = "tampered"
	if a.Matches("x")["l1"] != "r1" {
		t.Fatal("view mutation leaked into the answer set")
	}
}
