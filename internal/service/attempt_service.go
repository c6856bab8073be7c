package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/config"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/engine"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/upstream"
)

// Domain errors.
var (
	ErrExamNotAvailable = errors.New("exam is not available")
	ErrNoQuestions      = errors.New("no usable questions for this exam")
	ErrAttemptNotFound  = errors.New("attempt not found")
)

// ContentClient is the slice of the upstream client the loader needs.
type ContentClient interface {
	ExamBySlug(ctx context.Context, slug string) (*model.Exam, error)
	QuestionsByProduct(ctx context.Context, slug string) ([]model.Question, error)
}

// IdentityClient resolves the authenticated learner, if any.
type IdentityClient interface {
	CurrentUser(ctx context.Context, token string) (*upstream.Identity, error)
}

// ResultsClient persists graded payloads.
type ResultsClient interface {
	SaveResult(ctx context.Context, payload *model.ResultPayload) (*upstream.SaveOutcome, error)
}

// AttemptService owns the attempt lifecycle: load, learner interaction,
// countdown, grading and result submission.
type AttemptService struct {
	content  ContentClient
	identity IdentityClient
	results  ResultsClient
	store    *engine.Store
	rdb      *redis.Client
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAttemptService creates an AttemptService. rdb may be nil in tests;
// queue pushes are then skipped.
func NewAttemptService(
	content ContentClient,
	identity IdentityClient,
	results ResultsClient,
	store *engine.Store,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		content:  content,
		identity: identity,
		results:  results,
		store:    store,
		rdb:      rdb,
		cfg:      cfg,
		log:      log.With().Str("component", "attempt_service").Logger(),
	}
}

// Start loads the exam and its questions, builds the attempt session and,
// only once every fetch has settled, starts the countdown.
//
// Load failures on individual fetches are degraded, not fatal: a missing
// identity means an unauthenticated attempt, a failed exam fetch yields a
// synthesized placeholder exam, and a failed question fetch yields the
// "no questions" terminal state instead of an error page.
func (s *AttemptService) Start(ctx context.Context, req *model.StartAttemptRequest, token string) (*model.AttemptPaper, error) {
	studentID, studentName := s.resolveIdentity(ctx, token)

	exam, synthesized, err := s.loadExam(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	questions := s.loadQuestions(ctx, req.Slug, req.SampleOnly)
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sess := engine.NewSession(exam, questions, req.SampleOnly, studentID, studentName, rng)
	sess.ExamSynthesized = synthesized
	s.store.Put(sess)

	// All three fetches have settled; the clock may start.
	sess.StartClock(func(reason engine.SubmitReason) {
		s.autoSubmit(sess, reason)
	})

	s.log.Info().
		Str("attempt_id", sess.ID.String()).
		Str("slug", req.Slug).
		Bool("sample_only", req.SampleOnly).
		Bool("authenticated", studentID != "").
		Int("questions", len(questions)).
		Msg("Attempt started")

	s.pushSnapshot(sess)
	s.markActiveAttempt(sess)
	return sess.Paper(), nil
}

// resolveIdentity asks the identity provider who the learner is. Any
// failure is the unauthenticated path, never an error.
func (s *AttemptService) resolveIdentity(ctx context.Context, token string) (string, string) {
	if s.identity == nil || token == "" {
		return "", ""
	}
	ident, err := s.identity.CurrentUser(ctx, token)
	if err != nil {
		if !errors.Is(err, upstream.ErrNotFound) {
			s.log.Debug().Err(err).Msg("Identity resolution failed, continuing unauthenticated")
		}
		return "", ""
	}
	return ident.Key(), ident.Name
}

// loadExam fetches exam metadata. A found-but-unpublished exam and a
// definitive not-found are both the terminal "not available" state; a
// transport failure degrades to a synthesized placeholder so the attempt
// can still run and be graded.
func (s *AttemptService) loadExam(ctx context.Context, slug string) (*model.Exam, bool, error) {
	exam, err := s.content.ExamBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return nil, false, ErrExamNotAvailable
		}
		s.log.Warn().Err(err).Str("slug", slug).Msg("Exam fetch failed, synthesizing placeholder")
		return &model.Exam{Code: slug, Slug: slug, Title: slug}, true, nil
	}
	if !exam.Published() {
		return nil, false, ErrExamNotAvailable
	}
	return exam, false, nil
}

// loadQuestions fetches and filters the question set. Fetch errors are
// swallowed into an empty result; the caller renders the "no questions"
// state rather than crashing. Unpublished questions are always dropped;
// the isSample filter applies to the trial variant only.
func (s *AttemptService) loadQuestions(ctx context.Context, slug string, sampleOnly bool) []model.Question {
	fetched, err := s.content.QuestionsByProduct(ctx, slug)
	if err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("Question fetch failed, treating as empty")
		return nil
	}

	usable := make([]model.Question, 0, len(fetched))
	for i := range fetched {
		q := fetched[i]
		if !q.Published() {
			continue
		}
		if sampleOnly && !q.IsSample {
			continue
		}
		usable = append(usable, q)
	}
	return usable
}

// session resolves an attempt id to a live session.
func (s *AttemptService) session(attemptID string) (*engine.Session, error) {
	id, err := uuid.Parse(attemptID)
	if err != nil {
		return nil, ErrAttemptNotFound
	}
	sess := s.store.Get(id)
	if sess == nil {
		return nil, ErrAttemptNotFound
	}
	return sess, nil
}

// Paper returns the learner-facing attempt payload.
func (s *AttemptService) Paper(attemptID string) (*model.AttemptPaper, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}
	return sess.Paper(), nil
}

// State returns the mutable attempt view. Evicted attempts fall back to
// the last Redis snapshot, read-only, so a late reconnect still sees the
// final state and outcome.
func (s *AttemptService) State(attemptID string) (*model.AttemptState, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return s.snapshotState(attemptID)
	}
	return sess.State(), nil
}

func (s *AttemptService) snapshotState(attemptID string) (*model.AttemptState, error) {
	if s.rdb == nil {
		return nil, ErrAttemptNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	raw, err := s.rdb.Get(ctx, config.CacheKey.AttemptSnapshotKey(attemptID)).Bytes()
	if err != nil {
		return nil, ErrAttemptNotFound
	}

	var state model.AttemptState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.log.Warn().Err(err).Str("attempt_id", attemptID).Msg("Corrupt snapshot")
		return nil, ErrAttemptNotFound
	}
	return &state, nil
}

// Navigate moves the current-question pointer.
func (s *AttemptService) Navigate(attemptID string, index int) (*model.AttemptState, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}
	if err := sess.Navigate(index); err != nil {
		return nil, err
	}
	s.pushSnapshot(sess)
	return sess.State(), nil
}

// AnswerSingle records a single-choice answer.
func (s *AttemptService) AnswerSingle(attemptID string, req *model.SelectAnswerRequest) (*model.AttemptState, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}
	if err := sess.AnswerSingle(req.QuestionID, req.Label); err != nil {
		return nil, err
	}
	s.pushSnapshot(sess)
	return sess.State(), nil
}

// AnswerMultiple toggles a multi-choice label.
func (s *AttemptService) AnswerMultiple(attemptID string, req *model.SelectAnswerRequest) (*model.AttemptState, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.AnswerMultiple(req.QuestionID, req.Label); err != nil {
		return nil, err
	}
	s.pushSnapshot(sess)
	return sess.State(), nil
}

// AnswerMatching pairs one left item with one right item.
func (s *AttemptService) AnswerMatching(attemptID string, req *model.MatchAnswerRequest) (*model.AttemptState, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}
	if err := sess.AnswerMatching(req.QuestionID, req.LeftID, req.RightID); err != nil {
		return nil, err
	}
	s.pushSnapshot(sess)
	return sess.State(), nil
}

// MarkReview flags a question for review.
func (s *AttemptService) MarkReview(attemptID, questionID string) (*model.AttemptState, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}
	if err := sess.MarkReview(questionID); err != nil {
		return nil, err
	}
	s.pushSnapshot(sess)
	return sess.State(), nil
}

// Skip marks the current question skipped and advances with wraparound.
func (s *AttemptService) Skip(attemptID string) (*model.AttemptState, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.Skip(); err != nil {
		return nil, err
	}
	s.pushSnapshot(sess)
	return sess.State(), nil
}

// ProctorEvent applies one proctoring event. The event is queued for the
// audit trail regardless of verdict; an escalation forces submission
// through the same one-shot path as expiry and manual submit.
func (s *AttemptService) ProctorEvent(ctx context.Context, attemptID string, req *model.ProctorEventRequest) (*model.ProctorVerdict, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}

	ev, err := engine.ParseEventType(req.Type)
	if err != nil {
		return nil, err
	}

	verdict, err := sess.ProctorEvent(ev)
	if err != nil {
		return nil, err
	}

	s.pushProctorEvent(sess, req.Type, req.Detail)

	if verdict.Escalated {
		if _, err := s.finalize(ctx, sess, engine.ReasonProctoring); err != nil && !errors.Is(err, engine.ErrSubmitted) {
			s.log.Error().Err(err).Str("attempt_id", attemptID).Msg("Proctoring escalation submit failed")
		}
	}
	return &verdict, nil
}

// Submit is the learner-initiated submission path.
func (s *AttemptService) Submit(ctx context.Context, attemptID string) (*model.AttemptOutcome, error) {
	sess, err := s.session(attemptID)
	if err != nil {
		return nil, err
	}
	return s.finalize(ctx, sess, engine.ReasonManual)
}

// autoSubmit handles countdown expiry and other engine-initiated paths.
func (s *AttemptService) autoSubmit(sess *engine.Session, reason engine.SubmitReason) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.UpstreamTimeout+5*time.Second)
	defer cancel()

	if _, err := s.finalize(ctx, sess, reason); err != nil && !errors.Is(err, engine.ErrSubmitted) {
		s.log.Error().Err(err).
			Str("attempt_id", sess.ID.String()).
			Str("reason", string(reason)).
			Msg("Auto-submit failed")
	}
}

// finalize grades and submits exactly once. Losing the latch race returns
// engine.ErrSubmitted with no side effects.
//
// The dual result path is a deliberate degraded-mode guarantee: when the
// results store cannot persist (no identity, error response, transport
// failure), the graded numbers travel on the local navigation target so
// the learner always sees their score.
func (s *AttemptService) finalize(ctx context.Context, sess *engine.Session, reason engine.SubmitReason) (*model.AttemptOutcome, error) {
	summary, elapsed, ok := sess.TrySubmit(reason)
	if !ok {
		return nil, engine.ErrSubmitted
	}

	payload := s.buildResultPayload(sess, summary, elapsed)

	navigation := model.Navigation{
		Kind:      model.NavigationLocal,
		Correct:   summary.Correct,
		Total:     summary.Total,
		Attempted: summary.Attempted,
	}

	saved, err := s.results.SaveResult(ctx, payload)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("attempt_id", sess.ID.String()).Msg("Result save failed, falling back to local result")
	case !saved.Success || saved.IsTempStudent || saved.ResultID() == "":
		s.log.Info().Str("attempt_id", sess.ID.String()).Msg("Result not persisted, using local result")
	default:
		navigation.Kind = model.NavigationPersisted
		navigation.ResultID = saved.ResultID()
	}

	outcome := &model.AttemptOutcome{
		Reason:     string(reason),
		Correct:    summary.Correct,
		Wrong:      summary.Wrong,
		Attempted:  summary.Attempted,
		Total:      summary.Total,
		Percentage: summary.Percentage,
		Navigation: navigation,
	}
	sess.SetOutcome(outcome)
	s.store.ScheduleEviction(sess.ID)
	s.pushSnapshot(sess)
	s.cacheOutcome(sess, outcome)

	s.log.Info().
		Str("attempt_id", sess.ID.String()).
		Str("reason", string(reason)).
		Int("correct", summary.Correct).
		Int("attempted", summary.Attempted).
		Int("total", summary.Total).
		Float64("percentage", summary.Percentage).
		Str("navigation", string(navigation.Kind)).
		Msg("Attempt submitted")

	return outcome, nil
}

// buildResultPayload assembles the write-once result record. Learners with
// no resolved identity get a synthesized temporary identity so grading and
// submission still proceed.
func (s *AttemptService) buildResultPayload(sess *engine.Session, summary *engine.Summary, elapsed int) *model.ResultPayload {
	studentID := sess.StudentID
	studentName := sess.StudentName
	if studentID == "" {
		studentID = fmt.Sprintf("temp_%d", time.Now().Unix())
		studentName = "Guest Learner"
	}

	return &model.ResultPayload{
		StudentID:       studentID,
		StudentName:     studentName,
		ExamID:          sess.Exam.ID,
		ExamCode:        sess.Exam.Code,
		TotalQuestions:  summary.Total,
		Attempted:       summary.Attempted,
		Correct:         summary.Correct,
		Wrong:           summary.Wrong,
		Percentage:      summary.Percentage,
		DurationSeconds: elapsed,
		Questions:       summary.Questions,
	}
}

// pushProctorEvent queues the event for the audit worker. Best effort: a
// full or absent queue never blocks the attempt.
func (s *AttemptService) pushProctorEvent(sess *engine.Session, eventType, detail string) {
	if s.rdb == nil {
		return
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"attempt_id": sess.ID.String(),
		"student_id": sess.StudentID,
		"exam_code":  sess.Exam.Code,
		"event_type": eventType,
		"detail":     detail,
		"timestamp":  time.Now().Unix(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistProctorEventsQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Proctor event enqueue failed")
	}
}

// markActiveAttempt records which attempt a logged-in learner is running,
// bounded by the attempt duration plus the retention window.
func (s *AttemptService) markActiveAttempt(sess *engine.Session) {
	if s.rdb == nil || sess.StudentID == "" {
		return
	}

	ttl := time.Duration(sess.Exam.AttemptDurationMinutes(sess.SampleOnly))*time.Minute + s.cfg.AttemptRetention

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := config.CacheKey.StudentActiveAttemptKey(sess.StudentID)
	if err := s.rdb.Set(ctx, key, sess.ID.String(), ttl).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Active-attempt marker write failed")
	}
}

// cacheOutcome keeps the graded outcome readable after the session is
// evicted from memory.
func (s *AttemptService) cacheOutcome(sess *engine.Session, outcome *model.AttemptOutcome) {
	if s.rdb == nil {
		return
	}

	payload, _ := json.Marshal(outcome)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	key := config.CacheKey.AttemptOutcomeKey(sess.ID.String())
	if err := s.rdb.Set(ctx, key, payload, s.cfg.SnapshotTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Outcome cache write failed")
	}
}

// pushSnapshot queues a compact attempt snapshot for the snapshot worker.
// Best effort, same as above.
func (s *AttemptService) pushSnapshot(sess *engine.Session) {
	if s.rdb == nil {
		return
	}

	state := sess.State()
	payload, _ := json.Marshal(map[string]interface{}{
		"attempt_id": state.AttemptID,
		"state":      state,
		"timestamp":  time.Now().Unix(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.rdb.RPush(ctx, config.WorkerKey.PersistSnapshotsQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Snapshot enqueue failed")
	}
}
