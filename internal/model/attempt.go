package model

// QuestionStatus is the per-question palette label of an attempt.
type QuestionStatus string

const (
	StatusNotVisited QuestionStatus = "NOT_VISITED"
	StatusVisited    QuestionStatus = "VISITED"
	StatusAnswered   QuestionStatus = "ANSWERED"
	StatusSkipped    QuestionStatus = "SKIPPED"
	StatusReview     QuestionStatus = "REVIEW"
)

// StartAttemptRequest begins a new attempt for an exam slug.
type StartAttemptRequest struct {
	Slug       string `json:"slug" binding:"required,min=1,max=255"`
	SampleOnly bool   `json:"sample_only"`
}

// NavigateRequest moves the current question pointer.
type NavigateRequest struct {
	Index int `json:"index" binding:"min=0"`
}

// SelectAnswerRequest records a single-choice answer (last write wins) or
// toggles a multi-choice label, depending on the endpoint.
type SelectAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Label      string `json:"label" binding:"required,max=10"`
}

// MatchAnswerRequest pairs one left item with one right item.
type MatchAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	LeftID     string `json:"left_id" binding:"required"`
	RightID    string `json:"right_id" binding:"required"`
}

// MarkReviewRequest flags a question for review.
type MarkReviewRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
}

// ProctorEventRequest reports a proctoring event from the runner UI.
type ProctorEventRequest struct {
	Type   string `json:"type" binding:"required,oneof=copy cut paste contextmenu blur"`
	Detail string `json:"detail" binding:"omitempty,max=500"`
}

// QuestionForLearner is a question stripped of its answer key. Matching
// questions carry the precomputed per-left-item option lists instead of the
// full right-item column.
type QuestionForLearner struct {
	ID              string                 `json:"id"`
	QuestionType    QuestionType           `json:"question_type"`
	QuestionText    string                 `json:"question_text"`
	QuestionImages  []string               `json:"question_images,omitempty"`
	Options         []Option               `json:"options,omitempty"`
	LeftItems       []MatchItem            `json:"left_items,omitempty"`
	MatchingOptions map[string][]MatchItem `json:"matching_options,omitempty"`
}

// AttemptPaper is the learner-facing attempt payload returned on start.
type AttemptPaper struct {
	AttemptID       string               `json:"attempt_id"`
	ExamCode        string               `json:"exam_code"`
	ExamTitle       string               `json:"exam_title"`
	DurationMinutes int                  `json:"duration_minutes"`
	Questions       []QuestionForLearner `json:"questions"`
}

// AttemptState is the mutable view of an attempt: palette statuses, recorded
// answers, remaining time, and, once submitted, the outcome.
type AttemptState struct {
	AttemptID       string                       `json:"attempt_id"`
	Current         int                          `json:"current"`
	TimeLeftSeconds int                          `json:"time_left_seconds"`
	Statuses        map[string]QuestionStatus    `json:"statuses"`
	Answers         map[string][]string          `json:"answers"`
	MatchingAnswers map[string]map[string]string `json:"matching_answers"`
	Submitted       bool                         `json:"submitted"`
	Outcome         *AttemptOutcome              `json:"outcome,omitempty"`
}

// ProctorVerdict is the engine's reaction to a proctoring event.
type ProctorVerdict struct {
	Blocked   bool   `json:"blocked"`
	Notice    string `json:"notice,omitempty"`
	Remaining int    `json:"remaining_warnings"`
	Escalated bool   `json:"escalated"`
}
