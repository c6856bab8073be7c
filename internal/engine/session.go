package engine

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// SubmitReason says which terminal path triggered submission.
type SubmitReason string

const (
	ReasonManual     SubmitReason = "manual"
	ReasonExpired    SubmitReason = "time_expired"
	ReasonProctoring SubmitReason = "proctoring"
)

// Session errors.
var (
	ErrSubmitted         = errors.New("attempt already submitted")
	ErrQuestionNotFound  = errors.New("question not part of this attempt")
	ErrWrongQuestionType = errors.New("answer does not match question type")
)

// Session is one learner's attempt at one exam. A single parameterized
// session serves both the free trial (sample questions, sample duration)
// and the full exam; the variant is fixed at construction.
//
// All state is process-local and mutex-guarded. The logical invariant
// "submit executes at most once" is enforced by the submitted latch in
// TrySubmit; countdown expiry, proctoring escalation and manual submit
// all funnel through it.
type Session struct {
	mu sync.Mutex

	ID         uuid.UUID
	Exam       *model.Exam
	SampleOnly bool
	// ExamSynthesized marks a placeholder exam built after the metadata
	// fetch failed; grading still proceeds against it.
	ExamSynthesized bool

	// StudentID is empty for unauthenticated learners until submission,
	// when a temporary identity is synthesized.
	StudentID   string
	StudentName string

	Questions []model.Question
	byID      map[string]*model.Question

	tracker         *Tracker
	answers         *AnswerSet
	matchingOptions map[string]map[string][]model.MatchItem
	proctor         *Monitor
	countdown       *Countdown

	startedAt time.Time
	submitted bool
	// locked rejects learner input after a proctoring escalation, in the
	// window before the forced submission lands.
	locked  bool
	outcome *model.AttemptOutcome

	onForced func(reason SubmitReason)
}

// NewSession builds a session over an already-filtered question set. The
// matching-option lists are sampled here, once, and frozen: they must not
// reorder on any later read.
func NewSession(exam *model.Exam, questions []model.Question, sampleOnly bool, studentID, studentName string, rng *rand.Rand) *Session {
	ids := make([]string, len(questions))
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		ids[i] = questions[i].ID
		byID[questions[i].ID] = &questions[i]
	}

	seconds := exam.AttemptDurationMinutes(sampleOnly) * 60

	return &Session{
		ID:              uuid.New(),
		Exam:            exam,
		SampleOnly:      sampleOnly,
		StudentID:       studentID,
		StudentName:     studentName,
		Questions:       questions,
		byID:            byID,
		tracker:         NewTracker(ids),
		answers:         NewAnswerSet(),
		matchingOptions: SampleMatchingOptions(questions, rng),
		proctor:         NewMonitor(),
		countdown:       NewCountdown(seconds),
		startedAt:       time.Now(),
	}
}

// StartClock begins the countdown. Call only after all initial fetches have
// settled: activation is gated on load completion, not on construction.
// onForced receives countdown expiry and proctoring escalations.
func (s *Session) StartClock(onForced func(reason SubmitReason)) {
	s.mu.Lock()
	s.onForced = onForced
	s.mu.Unlock()

	s.countdown.Start(func() {
		if onForced != nil {
			onForced(ReasonExpired)
		}
	})
}

// Navigate moves the current-question pointer.
func (s *Session) Navigate(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptingInput(); err != nil {
		return err
	}
	return s.tracker.Navigate(i)
}

// AnswerSingle records a single-choice answer (last write wins).
func (s *Session) AnswerSingle(questionID, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkQuestion(questionID, model.QuestionTypeSingle); err != nil {
		return err
	}
	s.answers.SelectSingle(questionID, label)
	s.tracker.MarkAnswered(questionID)
	return nil
}

// AnswerMultiple toggles a multi-choice label. Even a deselect counts as
// recording an answer, so the status becomes ANSWERED either way.
func (s *Session) AnswerMultiple(questionID, label string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkQuestion(questionID, model.QuestionTypeMultiple); err != nil {
		return false, err
	}
	selected := s.answers.ToggleMulti(questionID, label)
	s.tracker.MarkAnswered(questionID)
	return selected, nil
}

// AnswerMatching pairs one left item with one right item, leaving the
// question's other pairs untouched.
func (s *Session) AnswerMatching(questionID, leftID, rightID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkQuestion(questionID, model.QuestionTypeMatching); err != nil {
		return err
	}
	s.answers.SetMatch(questionID, leftID, rightID)
	s.tracker.MarkAnswered(questionID)
	return nil
}

// MarkReview flags a question for review, even over ANSWERED.
func (s *Session) MarkReview(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptingInput(); err != nil {
		return err
	}
	if !s.tracker.Has(questionID) {
		return ErrQuestionNotFound
	}
	s.tracker.MarkReview(questionID)
	return nil
}

// Skip marks the current question skipped and advances with wraparound.
func (s *Session) Skip() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptingInput(); err != nil {
		return 0, err
	}
	return s.tracker.Skip(), nil
}

// ProctorEvent applies one proctoring event. On escalation the session
// locks out further input; actually forcing the submission is the caller's
// job (via the same one-shot submit path as expiry and manual submit).
func (s *Session) ProctorEvent(ev EventType) (model.ProctorVerdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.acceptingInput(); err != nil {
		return model.ProctorVerdict{}, err
	}
	verdict := s.proctor.Handle(ev)
	if verdict.Escalated {
		s.locked = true
	}
	return verdict, nil
}

// TrySubmit closes the one-shot submission latch. The first caller gets the
// graded summary and elapsed seconds; every later caller gets ok=false and
// must not repeat any submission side effect.
func (s *Session) TrySubmit(reason SubmitReason) (*Summary, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return nil, 0, false
	}
	s.submitted = true
	s.countdown.Stop()

	summary := Score(s.Questions, s.answers)
	elapsed := int(time.Since(s.startedAt).Seconds())
	return &summary, elapsed, true
}

// SetOutcome attaches the post-submission outcome for later state reads.
func (s *Session) SetOutcome(outcome *model.AttemptOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcome = outcome
}

// Submitted reports whether the latch is closed.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// TimeLeft returns the countdown's remaining seconds.
func (s *Session) TimeLeft() int {
	return s.countdown.Remaining()
}

// Paper returns the learner-facing payload: questions without their answer
// keys, matching questions with the frozen per-left-item option lists in
// place of the raw right-item column.
func (s *Session) Paper() *model.AttemptPaper {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := make([]model.QuestionForLearner, 0, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		view := model.QuestionForLearner{
			ID:             q.ID,
			QuestionType:   q.Type(),
			QuestionText:   q.QuestionText,
			QuestionImages: q.QuestionImages,
		}
		if q.Type() == model.QuestionTypeMatching {
			if q.MatchingPairs != nil {
				view.LeftItems = q.MatchingPairs.LeftItems
			}
			view.MatchingOptions = s.matchingOptions[q.ID]
		} else {
			view.Options = q.Options
		}
		questions = append(questions, view)
	}

	return &model.AttemptPaper{
		AttemptID:       s.ID.String(),
		ExamCode:        s.Exam.Code,
		ExamTitle:       s.Exam.Title,
		DurationMinutes: s.Exam.AttemptDurationMinutes(s.SampleOnly),
		Questions:       questions,
	}
}

// State returns the mutable attempt view.
func (s *Session) State() *model.AttemptState {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers, matching := s.answers.View()
	return &model.AttemptState{
		AttemptID:       s.ID.String(),
		Current:         s.tracker.Current(),
		TimeLeftSeconds: s.countdown.Remaining(),
		Statuses:        s.tracker.Statuses(),
		Answers:         answers,
		MatchingAnswers: matching,
		Submitted:       s.submitted,
		Outcome:         s.outcome,
	}
}

// MatchingOptionsFor exposes the frozen option list of one question's left
// item. Repeated reads within an attempt always return the same order.
func (s *Session) MatchingOptionsFor(questionID, leftID string) []model.MatchItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	perLeft, ok := s.matchingOptions[questionID]
	if !ok {
		return nil
	}
	return perLeft[leftID]
}

func (s *Session) acceptingInput() error {
	if s.submitted || s.locked {
		return ErrSubmitted
	}
	return nil
}

func (s *Session) checkQuestion(questionID string, want model.QuestionType) error {
	if err := s.acceptingInput(); err != nil {
		return err
	}
	q, ok := s.byID[questionID]
	if !ok {
		return ErrQuestionNotFound
	}
	if q.Type() != want {
		return ErrWrongQuestionType
	}
	return nil
}
