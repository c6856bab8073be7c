package engine

import (
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// AnswerSet holds the learner's answers keyed by question id with
// type-specific merge semantics:
//   - single-choice: last write wins
//   - multi-choice: toggle (select again to deselect)
//   - matching: per-left-item overwrite, other pairs untouched
//
// No validation happens at write time; nothing prevents the same right item
// being paired with two left items. The scorer settles it.
type AnswerSet struct {
	single   map[string]string
	multi    map[string][]string
	matching map[string]map[string]string
}

// NewAnswerSet creates an empty answer set.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{
		single:   make(map[string]string),
		multi:    make(map[string][]string),
		matching: make(map[string]map[string]string),
	}
}

// SelectSingle stores a single-choice answer, replacing any prior value.
func (a *AnswerSet) SelectSingle(questionID, label string) {
	a.single[questionID] = label
}

// ToggleMulti toggles a multi-choice label and reports whether the label is
// selected after the call. Toggling a question's last label off leaves an
// empty selection behind, which still counts as attempted, matching how
// the runner UI treats a touched checkbox group.
func (a *AnswerSet) ToggleMulti(questionID, label string) bool {
	selection := a.multi[questionID]
	for i, l := range selection {
		if l == label {
			a.multi[questionID] = append(selection[:i], selection[i+1:]...)
			return false
		}
	}
	a.multi[questionID] = append(selection, label)
	return true
}

// SetMatch pairs leftID with rightID for the given matching question,
// overwriting only that key.
func (a *AnswerSet) SetMatch(questionID, leftID, rightID string) {
	pairs := a.matching[questionID]
	if pairs == nil {
		pairs = make(map[string]string)
		a.matching[questionID] = pairs
	}
	pairs[leftID] = rightID
}

// Single returns the stored single-choice label, if any.
func (a *AnswerSet) Single(questionID string) (string, bool) {
	label, ok := a.single[questionID]
	return label, ok
}

// Multi returns the stored multi-choice selection and whether the question
// was ever touched.
func (a *AnswerSet) Multi(questionID string) ([]string, bool) {
	selection, ok := a.multi[questionID]
	return selection, ok
}

// Matches returns the stored matching pairs for a question (nil if none).
func (a *AnswerSet) Matches(questionID string) map[string]string {
	return a.matching[questionID]
}

// Attempted reports whether the learner recorded anything for the question,
// using the type-specific existence rule.
func (a *AnswerSet) Attempted(q *model.Question) bool {
	switch q.Type() {
	case model.QuestionTypeSingle:
		_, ok := a.single[q.ID]
		return ok
	case model.QuestionTypeMultiple:
		_, ok := a.multi[q.ID]
		return ok
	case model.QuestionTypeMatching:
		return len(a.matching[q.ID]) > 0
	}
	return false
}

// View returns copies of the answers for the state endpoint: single-choice
// answers appear as one-element slices alongside multi selections.
func (a *AnswerSet) View() (map[string][]string, map[string]map[string]string) {
	answers := make(map[string][]string, len(a.single)+len(a.multi))
	for qid, label := range a.single {
		answers[qid] = []string{label}
	}
	for qid, selection := range a.multi {
		answers[qid] = append([]string(nil), selection...)
	}

	matching := make(map[string]map[string]string, len(a.matching))
	for qid, pairs := range a.matching {
		cp := make(map[string]string, len(pairs))
		for k, v := range pairs {
			cp[k] = v
		}
		matching[qid] = cp
	}
	return answers, matching
}
