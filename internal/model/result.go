package model

// QuestionOutcome records submitted-vs-correct for one question.
type QuestionOutcome struct {
	QuestionID       string            `json:"questionId"`
	QuestionType     QuestionType      `json:"questionType"`
	Attempted        bool              `json:"attempted"`
	Correct          bool              `json:"correct"`
	SubmittedAnswers []string          `json:"submittedAnswers,omitempty"`
	SubmittedMatches map[string]string `json:"submittedMatches,omitempty"`
	CorrectAnswers   []string          `json:"correctAnswers,omitempty"`
	CorrectMatches   map[string]string `json:"correctMatches,omitempty"`
}

// ResultPayload is the write-once graded payload handed to the results store.
// It is owned by the submitting attempt and never mutated afterwards.
type ResultPayload struct {
	StudentID       string            `json:"studentId"`
	StudentName     string            `json:"studentName"`
	ExamID          string            `json:"examId"`
	ExamCode        string            `json:"examCode"`
	TotalQuestions  int               `json:"totalQuestions"`
	Attempted       int               `json:"attempted"`
	Correct         int               `json:"correct"`
	Wrong           int               `json:"wrong"`
	Percentage      float64           `json:"percentage"`
	DurationSeconds int               `json:"durationSeconds"`
	Questions       []QuestionOutcome `json:"questions"`
}

// NavigationKind distinguishes the two post-submit destinations.
type NavigationKind string

const (
	// NavigationPersisted points at the stored result record.
	NavigationPersisted NavigationKind = "persisted"
	// NavigationLocal carries the score inline because nothing was stored.
	NavigationLocal NavigationKind = "local"
)

// Navigation is the contractual output of submission: where the runner UI
// should send the learner, with enough data that the score is never lost
// even when the results store was unreachable.
type Navigation struct {
	Kind      NavigationKind `json:"kind"`
	ResultID  string         `json:"result_id,omitempty"`
	Correct   int            `json:"correct"`
	Total     int            `json:"total"`
	Attempted int            `json:"attempted"`
}

// AttemptOutcome is the graded summary kept on the attempt after submission.
type AttemptOutcome struct {
	Reason     string     `json:"reason"`
	Correct    int        `json:"correct"`
	Wrong      int        `json:"wrong"`
	Attempted  int        `json:"attempted"`
	Total      int        `json:"total"`
	Percentage float64    `json:"percentage"`
	Navigation Navigation `json:"navigation"`
}
