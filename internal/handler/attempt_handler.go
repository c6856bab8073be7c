package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/engine"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/middleware"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/response"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/service"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/validator"
)

// AttemptHandler handles the learner-facing attempt endpoints.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// StartAttempt godoc
// POST /api/v1/attempts
// Loads the exam + question set and starts the attempt countdown.
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	var req model.StartAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	paper, err := h.attemptService.Start(c.Request.Context(), &req, middleware.GetRawToken(c))
	if err != nil {
		failAttemptError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": paper})
}

// GetPaper godoc
// GET /api/v1/attempts/:attempt_id/paper
// Returns the question payload without answer keys.
func (h *AttemptHandler) GetPaper(c *gin.Context) {
	paper, err := h.attemptService.Paper(c.Param("attempt_id"))
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// GetState godoc
// GET /api/v1/attempts/:attempt_id/state
// Returns palette statuses, answers, remaining time and the outcome.
func (h *AttemptHandler) GetState(c *gin.Context) {
	state, err := h.attemptService.State(c.Param("attempt_id"))
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// Navigate godoc
// POST /api/v1/attempts/:attempt_id/navigate
func (h *AttemptHandler) Navigate(c *gin.Context) {
	var req model.NavigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.attemptService.Navigate(c.Param("attempt_id"), req.Index)
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// AnswerSingle godoc
// POST /api/v1/attempts/:attempt_id/answers/single
func (h *AttemptHandler) AnswerSingle(c *gin.Context) {
	var req model.SelectAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.attemptService.AnswerSingle(c.Param("attempt_id"), &req)
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// AnswerMultiple godoc
// POST /api/v1/attempts/:attempt_id/answers/multiple
// Toggles one label; repeating the call deselects it again.
func (h *AttemptHandler) AnswerMultiple(c *gin.Context) {
	var req model.SelectAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.attemptService.AnswerMultiple(c.Param("attempt_id"), &req)
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// AnswerMatching godoc
// POST /api/v1/attempts/:attempt_id/answers/matching
func (h *AttemptHandler) AnswerMatching(c *gin.Context) {
	var req model.MatchAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.attemptService.AnswerMatching(c.Param("attempt_id"), &req)
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// MarkReview godoc
// POST /api/v1/attempts/:attempt_id/review
func (h *AttemptHandler) MarkReview(c *gin.Context) {
	var req model.MarkReviewRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.attemptService.MarkReview(c.Param("attempt_id"), req.QuestionID)
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// Skip godoc
// POST /api/v1/attempts/:attempt_id/skip
// Marks the current question skipped and advances with wraparound.
func (h *AttemptHandler) Skip(c *gin.Context) {
	state, err := h.attemptService.Skip(c.Param("attempt_id"))
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// ProctorEvent godoc
// POST /api/v1/attempts/:attempt_id/proctor-events
// Reports a clipboard / context-menu / focus-loss event.
func (h *AttemptHandler) ProctorEvent(c *gin.Context) {
	var req model.ProctorEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	verdict, err := h.attemptService.ProctorEvent(c.Request.Context(), c.Param("attempt_id"), &req)
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verdict": verdict})
}

// Submit godoc
// POST /api/v1/attempts/:attempt_id/submit
// Manual submission. Grades, persists the result when possible, and returns
// the outcome with either a persisted or local result target.
func (h *AttemptHandler) Submit(c *gin.Context) {
	outcome, err := h.attemptService.Submit(c.Request.Context(), c.Param("attempt_id"))
	if err != nil {
		failAttemptError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"outcome": outcome})
}

// failAttemptError maps service and engine errors onto response codes.
func failAttemptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamNotAvailable):
		response.Fail(c, http.StatusNotFound, response.ErrExamNotAvailable)
	case errors.Is(err, service.ErrNoQuestions):
		response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
	case errors.Is(err, service.ErrAttemptNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrAttemptNotFound)
	case errors.Is(err, engine.ErrSubmitted):
		response.Fail(c, http.StatusConflict, response.ErrAttemptSubmitted)
	case errors.Is(err, engine.ErrQuestionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrQuestionNotFound)
	case errors.Is(err, engine.ErrWrongQuestionType):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidQuestionType)
	case errors.Is(err, engine.ErrIndexOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
	case errors.Is(err, engine.ErrUnknownEvent):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidEvent)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
