package engine

import (
	"testing"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

func singleQ(id, correct string) model.Question {
	return model.Question{ID: id, QuestionType: "single", CorrectAnswers: []string{correct}}
}

func multiQ(id string, correct ...string) model.Question {
	return model.Question{ID: id, QuestionType: "multiple", CorrectAnswers: correct}
}

func matchQ(id string, correct map[string]string) model.Question {
	return model.Question{
		ID:           id,
		QuestionType: "matching",
		MatchingPairs: &model.MatchingPairs{
			CorrectMatches: correct,
		},
	}
}

func TestScore_SingleChoice(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		answered  bool
		wantRight bool
	}{
		{name: "correct", answer: "B", answered: true, wantRight: true},
		{name: "wrong", answer: "A", answered: true, wantRight: false},
		{name: "unattempted", answered: false, wantRight: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			answers := NewAnswerSet()
			if tc.answered {
				answers.SelectSingle("q1", tc.answer)
			}

			s := Score([]model.Question{singleQ("q1", "B")}, answers)
			got := s.Questions[0]
			if got.Attempted != tc.answered {
				t.Fatalf("attempted: expected %v, got %v", tc.answered, got.Attempted)
			}
			if got.Correct != tc.wantRight {
				t.Fatalf("correct: expected %v, got %v", tc.wantRight, got.Correct)
			}
		})
	}
}

func TestScore_MultiChoiceSetEquality(t *testing.T) {
	tests := []struct {
		name      string
		selection []string
		wantRight bool
	}{
		{name: "exact match any order", selection: []string{"D", "A"}, wantRight: true},
		{name: "subset is wrong", selection: []string{"A"}, wantRight: false},
		{name: "superset is wrong", selection: []string{"A", "D", "B"}, wantRight: false},
		{name: "disjoint is wrong", selection: []string{"B", "C"}, wantRight: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			answers := NewAnswerSet()
			for _, label := range tc.selection {
				answers.ToggleMulti("q1", label)
			}

			s := Score([]model.Question{multiQ("q1", "A", "D")}, answers)
			if got := s.Questions[0].Correct; got != tc.wantRight {
				t.Fatalf("expected correct=%v, got %v", tc.wantRight, got)
			}
		})
	}
}

func TestScore_MultiChoiceEmptiedSelectionIsWrongButAttempted(t *testing.T) {
	answers := NewAnswerSet()
	answers.ToggleMulti("q1", "A")
	answers.ToggleMulti("q1", "A") // deselect again

	s := Score([]model.Question{multiQ("q1", "A")}, answers)
	got := s.Questions[0]
	if !got.Attempted {
		t.Fatal("touched multi question should count as attempted")
	}
	if got.Correct {
		t.Fatal("empty selection cannot be correct")
	}
	if s.Attempted != 1 || s.Wrong != 1 {
		t.Fatalf("expected attempted=1 wrong=1, got attempted=%d wrong=%d", s.Attempted, s.Wrong)
	}
}

func TestScore_MatchingExactEquality(t *testing.T) {
	correct := map[string]string{"l1": "r1", "l2": "r2"}

	tests := []struct {
		name      string
		submitted map[string]string
		wantRight bool
	}{
		{name: "exact", submitted: map[string]string{"l1": "r1", "l2": "r2"}, wantRight: true},
		{name: "one wrong pair", submitted: map[string]string{"l1": "r2", "l2": "r2"}, wantRight: false},
		{name: "missing pair", submitted: map[string]string{"l1": "r1"}, wantRight: false},
		{name: "extra pair", submitted: map[string]string{"l1": "r1", "l2": "r2", "l3": "r3"}, wantRight: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			answers := NewAnswerSet()
			for left, right := range tc.submitted {
				answers.SetMatch("q1", left, right)
			}

			s := Score([]model.Question{matchQ("q1", correct)}, answers)
			if got := s.Questions[0].Correct; got != tc.wantRight {
				t.Fatalf("expected correct=%v, got %v", tc.wantRight, got)
			}
		})
	}
}

func TestScore_PercentageUsesFullDenominator(t *testing.T) {
	questions := []model.Question{
		singleQ("q1", "A"),
		singleQ("q2", "B"),
		singleQ("q3", "C"),
		singleQ("q4", "D"),
		singleQ("q5", "A"),
		singleQ("q6", "B"),
		singleQ("q7", "C"),
		singleQ("q8", "D"),
		singleQ("q9", "A"),
		singleQ("q10", "B"),
	}

	// 3 correct answers out of 10 questions, only 4 attempted.
	answers := NewAnswerSet()
	answers.SelectSingle("q1", "A")
	answers.SelectSingle("q2", "B")
	answers.SelectSingle("q3", "C")
	answers.SelectSingle("q4", "A") // wrong

	s := Score(questions, answers)
	if s.Total != 10 || s.Attempted != 4 || s.Correct != 3 || s.Wrong != 1 {
		t.Fatalf("unexpected tallies: %+v", s)
	}
	// Unattempted questions count in the denominator but not as wrong.
	if s.Percentage != 30.00 {
		t.Fatalf("expected 30.00, got %v", s.Percentage)
	}
}

func TestScore_PercentageRoundsToTwoDecimals(t *testing.T) {
	questions := []model.Question{singleQ("q1", "A"), singleQ("q2", "B"), singleQ("q3", "C")}
	answers := NewAnswerSet()
	answers.SelectSingle("q1", "A")

	s := Score(questions, answers)
	if s.Percentage != 33.33 {
		t.Fatalf("expected 33.33, got %v", s.Percentage)
	}
}

func TestScore_EmptyQuestionSet(t *testing.T) {
	s := Score(nil, NewAnswerSet())
	if s.Total != 0 || s.Percentage != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}
