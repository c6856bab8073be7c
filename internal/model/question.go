package model

import "strings"

// QuestionType enumerates the three supported question kinds.
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeMatching QuestionType = "matching"
)

// NormalizeQuestionType maps the content store's loosely-typed questionType
// strings onto the canonical enum. Unknown values degrade to single-choice,
// matching how the storefront renders them.
func NormalizeQuestionType(raw string) QuestionType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "multiple", "multi", "multi-choice", "multiple-choice", "checkbox":
		return QuestionTypeMultiple
	case "matching", "match", "matching-type":
		return QuestionTypeMatching
	default:
		return QuestionTypeSingle
	}
}

// Option is one selectable choice of a single/multi-choice question.
type Option struct {
	Label  string   `json:"label"`
	Text   string   `json:"text"`
	Images []string `json:"images,omitempty"`
}

// MatchItem is one side of a matching pair (left or right column).
type MatchItem struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Images []string `json:"images,omitempty"`
}

// MatchingPairs is the payload of a matching-type question.
type MatchingPairs struct {
	LeftItems  []MatchItem `json:"leftItems"`
	RightItems []MatchItem `json:"rightItems"`
	// CorrectMatches maps left-item id → right-item id.
	CorrectMatches map[string]string `json:"correctMatches"`
}

// Question is a single exam question fetched from the content store,
// immutable for the duration of one attempt.
type Question struct {
	ID             string         `json:"_id"`
	QuestionType   string         `json:"questionType"`
	QuestionText   string         `json:"questionText"`
	QuestionImages []string       `json:"questionImages,omitempty"`
	IsSample       bool           `json:"isSample"`
	Options        []Option       `json:"options,omitempty"`
	CorrectAnswers []string       `json:"correctAnswers,omitempty"`
	MatchingPairs  *MatchingPairs `json:"matchingPairs,omitempty"`

	IsPublishedFlag *bool  `json:"isPublished"`
	PublishedFlag   *bool  `json:"published"`
	Status          string `json:"status"`
}

// Type returns the canonical question type.
func (q *Question) Type() QuestionType {
	return NormalizeQuestionType(q.QuestionType)
}

// Published reports whether the question is usable in an attempt.
func (q *Question) Published() bool {
	return publishedFrom(q.IsPublishedFlag, q.PublishedFlag, q.Status)
}
