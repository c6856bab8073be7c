package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenInvalid ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Attempt lifecycle ─────────────────────────────────────────────
	ErrExamNotAvailable    ErrCode = "EXAM_NOT_AVAILABLE"
	ErrNoQuestions         ErrCode = "NO_QUESTIONS"
	ErrAttemptNotFound     ErrCode = "ATTEMPT_NOT_FOUND"
	ErrAttemptSubmitted    ErrCode = "ATTEMPT_ALREADY_SUBMITTED"
	ErrQuestionNotFound    ErrCode = "QUESTION_NOT_FOUND"
	ErrInvalidQuestionType ErrCode = "INVALID_QUESTION_TYPE"
	ErrInvalidEvent        ErrCode = "INVALID_PROCTOR_EVENT"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrExamNotAvailable:
		return "This exam is not available right now."
	case ErrNoQuestions:
		return "No questions are available for this exam."
	case ErrAttemptNotFound:
		return "No attempt found for this ID."
	case ErrAttemptSubmitted:
		return "This attempt has already been submitted."
	case ErrQuestionNotFound:
		return "The question does not belong to this attempt."
	case ErrInvalidQuestionType:
		return "The answer does not match the question type."
	case ErrInvalidEvent:
		return "Unknown proctoring event type."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
