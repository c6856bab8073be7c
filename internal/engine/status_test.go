package engine

import (
	"testing"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

func newTestTracker() *Tracker {
	return NewTracker([]string{"q1", "q2", "q3"})
}

func TestTracker_InitialStatuses(t *testing.T) {
	tr := newTestTracker()

	statuses := tr.Statuses()
	if statuses["q1"] != model.StatusVisited {
		t.Fatalf("expected q1 VISITED, got %s", statuses["q1"])
	}
	if statuses["q2"] != model.StatusNotVisited || statuses["q3"] != model.StatusNotVisited {
		t.Fatalf("expected q2/q3 NOT_VISITED, got %s/%s", statuses["q2"], statuses["q3"])
	}
	if tr.Current() != 0 {
		t.Fatalf("expected current=0, got %d", tr.Current())
	}
}

func TestTracker_NavigateUpgradesOnlyNotVisited(t *testing.T) {
	tr := newTestTracker()

	if err := tr.Navigate(1); err != nil {
		t.Fatalf("navigate failed: %v", err)
	}
	if got := tr.Statuses()["q2"]; got != model.StatusVisited {
		t.Fatalf("expected q2 VISITED after navigation, got %s", got)
	}

	// Visiting an ANSWERED question must not downgrade it.
	tr.MarkAnswered("q2")
	if err := tr.Navigate(0); err != nil {
		t.Fatalf("navigate failed: %v", err)
	}
	if err := tr.Navigate(1); err != nil {
		t.Fatalf("navigate failed: %v", err)
	}
	if got := tr.Statuses()["q2"]; got != model.StatusAnswered {
		t.Fatalf("expected q2 to stay ANSWERED, got %s", got)
	}
}

func TestTracker_NavigateOutOfRange(t *testing.T) {
	tr := newTestTracker()

	if err := tr.Navigate(-1); err != ErrIndexOutOfRange {
		t.Fatalf("expected ErrIndexOutOfRange for -1, got %v", err)
	}
	if err := tr.Navigate(3); err != ErrIndexOutOfRange {
		t.Fatalf("expected ErrIndexOutOfRange for 3, got %v", err)
	}
	if tr.Current() != 0 {
		t.Fatalf("failed navigation moved the pointer to %d", tr.Current())
	}
}

func TestTracker_ReviewOverridesAnswered(t *testing.T) {
	tr := newTestTracker()

	tr.MarkAnswered("q1")
	tr.MarkReview("q1")
	if got := tr.Statuses()["q1"]; got != model.StatusReview {
		t.Fatalf("expected REVIEW over ANSWERED, got %s", got)
	}

	// Answering again restores ANSWERED.
	tr.MarkAnswered("q1")
	if got := tr.Statuses()["q1"]; got != model.StatusAnswered {
		t.Fatalf("expected ANSWERED after re-answer, got %s", got)
	}
}

func TestTracker_SkipAdvancesAndWraps(t *testing.T) {
	tr := newTestTracker()

	if got := tr.Skip(); got != 1 {
		t.Fatalf("expected skip to land on 1, got %d", got)
	}
	if got := tr.Statuses()["q1"]; got != model.StatusSkipped {
		t.Fatalf("expected q1 SKIPPED, got %s", got)
	}

	// Skip from the last question wraps to the first.
	if err := tr.Navigate(2); err != nil {
		t.Fatalf("navigate failed: %v", err)
	}
	if got := tr.Skip(); got != 0 {
		t.Fatalf("expected wraparound to 0, got %d", got)
	}
	if got := tr.Statuses()["q3"]; got != model.StatusSkipped {
		t.Fatalf("expected q3 SKIPPED, got %s", got)
	}
}

func TestTracker_StatusesReturnsCopy(t *testing.T) {
	tr := newTestTracker()

	snapshot := tr.Statuses()
	snapshot["q1"] = model.StatusSkipped

	if got := tr.Statuses()["q1"]; got != model.StatusVisited {
		t.Fatalf("mutating the snapshot leaked into the tracker: %s", got)
	}
}
