package engine

import (
	"errors"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// ErrIndexOutOfRange is returned for navigation beyond the question list.
var ErrIndexOutOfRange = errors.New("question index out of range")

// Tracker drives the question palette: it owns the current-question pointer
// and one status label per question.
//
// Transition rules:
//   - navigation upgrades NOT_VISITED to VISITED and never downgrades
//     ANSWERED, SKIPPED or REVIEW
//   - recording an answer sets ANSWERED unconditionally
//   - marking review sets REVIEW unconditionally, even over ANSWERED
//   - skip sets SKIPPED and advances the pointer with wraparound
type Tracker struct {
	order   []string
	status  map[string]model.QuestionStatus
	current int
}

// NewTracker initializes the palette: the first question starts VISITED,
// all others NOT_VISITED.
func NewTracker(questionIDs []string) *Tracker {
	t := &Tracker{
		order:  append([]string(nil), questionIDs...),
		status: make(map[string]model.QuestionStatus, len(questionIDs)),
	}
	for i, id := range questionIDs {
		if i == 0 {
			t.status[id] = model.StatusVisited
		} else {
			t.status[id] = model.StatusNotVisited
		}
	}
	return t
}

// Count returns the number of tracked questions.
func (t *Tracker) Count() int { return len(t.order) }

// Current returns the current question index.
func (t *Tracker) Current() int { return t.current }

// Has reports whether the question belongs to this attempt.
func (t *Tracker) Has(questionID string) bool {
	_, ok := t.status[questionID]
	return ok
}

// Navigate moves the pointer to index i and upgrades that question's status
// from NOT_VISITED to VISITED. Any other status is left untouched.
func (t *Tracker) Navigate(i int) error {
	if i < 0 || i >= len(t.order) {
		return ErrIndexOutOfRange
	}
	t.current = i
	t.visit(t.order[i])
	return nil
}

// MarkAnswered sets the question to ANSWERED, overriding REVIEW and SKIPPED.
func (t *Tracker) MarkAnswered(questionID string) {
	if t.Has(questionID) {
		t.status[questionID] = model.StatusAnswered
	}
}

// MarkReview sets the question to REVIEW unconditionally. Marking review
// after answering hides the ANSWERED label; the palette shows REVIEW until
// the learner answers again.
func (t *Tracker) MarkReview(questionID string) {
	if t.Has(questionID) {
		t.status[questionID] = model.StatusReview
	}
}

// Skip marks the current question SKIPPED and advances the pointer to
// (current+1) mod count, wrapping past the last question back to the first.
// Returns the new current index.
func (t *Tracker) Skip() int {
	if len(t.order) == 0 {
		return 0
	}
	t.status[t.order[t.current]] = model.StatusSkipped
	t.current = (t.current + 1) % len(t.order)
	t.visit(t.order[t.current])
	return t.current
}

// visit upgrades NOT_VISITED to VISITED and nothing else.
func (t *Tracker) visit(questionID string) {
	if t.status[questionID] == model.StatusNotVisited {
		t.status[questionID] = model.StatusVisited
	}
}

// Statuses returns a copy of the palette.
func (t *Tracker) Statuses() map[string]model.QuestionStatus {
	out := make(map[string]model.QuestionStatus, len(t.status))
	for k, v := range t.status {
		out[k] = v
	}
	return out
}
