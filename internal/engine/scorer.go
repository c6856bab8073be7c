package engine

import (
	"math"
	"sort"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// Summary aggregates the graded attempt.
//
// Percentage uses the FULL question count as denominator: unattempted
// questions drag the percentage down without being tallied as wrong.
type Summary struct {
	Total      int
	Attempted  int
	Correct    int
	Wrong      int
	Percentage float64
	Questions  []model.QuestionOutcome
}

// Score grades every question independently with type-specific equality:
//   - single-choice: stored answer equals correctAnswers[0]
//   - multi-choice: set equality, order-independent, never subset-tolerant
//   - matching: exact mapping equality including cardinality; an extra or
//     missing pair fails the whole question
func Score(questions []model.Question, answers *AnswerSet) Summary {
	s := Summary{
		Total:     len(questions),
		Questions: make([]model.QuestionOutcome, 0, len(questions)),
	}

	for i := range questions {
		q := &questions[i]
		outcome := gradeQuestion(q, answers)

		if outcome.Attempted {
			s.Attempted++
			if outcome.Correct {
				s.Correct++
			} else {
				s.Wrong++
			}
		}
		s.Questions = append(s.Questions, outcome)
	}

	if s.Total > 0 {
		s.Percentage = round2(float64(s.Correct) / float64(s.Total) * 100)
	}
	return s
}

func gradeQuestion(q *model.Question, answers *AnswerSet) model.QuestionOutcome {
	outcome := model.QuestionOutcome{
		QuestionID:   q.ID,
		QuestionType: q.Type(),
	}

	switch q.Type() {
	case model.QuestionTypeSingle:
		outcome.CorrectAnswers = q.CorrectAnswers
		label, ok := answers.Single(q.ID)
		if !ok {
			return outcome
		}
		outcome.Attempted = true
		outcome.SubmittedAnswers = []string{label}
		outcome.Correct = len(q.CorrectAnswers) > 0 && label == q.CorrectAnswers[0]

	case model.QuestionTypeMultiple:
		outcome.CorrectAnswers = q.CorrectAnswers
		selection, ok := answers.Multi(q.ID)
		if !ok {
			return outcome
		}
		outcome.Attempted = true
		outcome.SubmittedAnswers = append([]string(nil), selection...)
		outcome.Correct = setEqual(selection, q.CorrectAnswers)

	case model.QuestionTypeMatching:
		if q.MatchingPairs != nil {
			outcome.CorrectMatches = q.MatchingPairs.CorrectMatches
		}
		submitted := answers.Matches(q.ID)
		if len(submitted) == 0 {
			return outcome
		}
		outcome.Attempted = true
		outcome.SubmittedMatches = submitted
		if q.MatchingPairs != nil {
			outcome.Correct = matchesEqual(submitted, q.MatchingPairs.CorrectMatches)
		}
	}

	return outcome
}

// setEqual compares two label lists as sets.
func setEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// matchesEqual requires identical cardinality and that every key on either
// side maps to the same value.
func matchesEqual(submitted, correct map[string]string) bool {
	if len(submitted) != len(correct) {
		return false
	}
	for left, right := range correct {
		if submitted[left] != right {
			return false
		}
	}
	for left, right := range submitted {
		if correct[left] != right {
			return false
		}
	}
	return len(correct) > 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
