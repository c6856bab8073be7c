package websocket

import "github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionNavigate       Action = "navigate"
	ActionAnswerSingle   Action = "answer_single"
	ActionAnswerMultiple Action = "answer_multiple"
	ActionAnswerMatching Action = "answer_matching"
	ActionReview         Action = "review"
	ActionSkip           Action = "skip"
	ActionProctor        Action = "proctor"
	ActionSync           Action = "sync"
	ActionSubmit         Action = "submit"
	ActionPing           Action = "ping"
)

// RequestPayload is the single client message shape; unused fields stay
// zero for actions that do not need them.
type RequestPayload struct {
	Action     Action `json:"action"`
	Index      int    `json:"index"`
	QuestionID string `json:"question_id"`
	Label      string `json:"label"`
	LeftID     string `json:"left_id"`
	RightID    string `json:"right_id"`
	EventType  string `json:"event_type"`
	Detail     string `json:"detail"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventState     Event = "state"
	EventVerdict   Event = "verdict"
	EventSubmitted Event = "submitted"
	EventPong      Event = "pong"
)

// StateResponse carries the attempt state after any mutating action.
type StateResponse struct {
	Event Event               `json:"event"`
	State *model.AttemptState `json:"state"`
}

// VerdictResponse answers a proctoring event report.
type VerdictResponse struct {
	Event   Event                 `json:"event"`
	Verdict *model.ProctorVerdict `json:"verdict"`
}

// SubmittedResponse carries the graded outcome. Pushed for manual
// submission over the socket and for forced submissions alike.
type SubmittedResponse struct {
	Event   Event                 `json:"event"`
	Outcome *model.AttemptOutcome `json:"outcome"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
