package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/service"
	ws "github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams one attempt over a WebSocket: every REST mutation has
// a matching action here, so a runner UI can drive the whole attempt on a
// single connection.
type WSHandler struct {
	attemptService *service.AttemptService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(attemptService *service.AttemptService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		attemptService: attemptService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// AttemptStream godoc
// WS /ws/v1/attempts/:attempt_id/stream
// Upgrades to WebSocket for real-time attempt interaction.
func (h *WSHandler) AttemptStream(c *gin.Context) {
	attemptID := c.Param("attempt_id")

	// Reject unknown attempts before paying for the upgrade.
	if _, err := h.attemptService.State(attemptID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attempt not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("attempt_id", attemptID).Logger()
	wsLog.Info().Msg("Learner connected")

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionNavigate:
			state, err := h.attemptService.Navigate(attemptID, msg.Index)
			h.replyState(conn, state, err)
		case ws.ActionAnswerSingle:
			state, err := h.attemptService.AnswerSingle(attemptID, &model.SelectAnswerRequest{
				QuestionID: msg.QuestionID,
				Label:      msg.Label,
			})
			h.replyState(conn, state, err)
		case ws.ActionAnswerMultiple:
			state, err := h.attemptService.AnswerMultiple(attemptID, &model.SelectAnswerRequest{
				QuestionID: msg.QuestionID,
				Label:      msg.Label,
			})
			h.replyState(conn, state, err)
		case ws.ActionAnswerMatching:
			state, err := h.attemptService.AnswerMatching(attemptID, &model.MatchAnswerRequest{
				QuestionID: msg.QuestionID,
				LeftID:     msg.LeftID,
				RightID:    msg.RightID,
			})
			h.replyState(conn, state, err)
		case ws.ActionReview:
			state, err := h.attemptService.MarkReview(attemptID, msg.QuestionID)
			h.replyState(conn, state, err)
		case ws.ActionSkip:
			state, err := h.attemptService.Skip(attemptID)
			h.replyState(conn, state, err)
		case ws.ActionSync:
			state, err := h.attemptService.State(attemptID)
			h.replyState(conn, state, err)
		case ws.ActionProctor:
			h.handleProctor(conn, c.Request.Context(), attemptID, &msg)
		case ws.ActionSubmit:
			h.handleSubmit(conn, c.Request.Context(), wsLog, attemptID)
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// replyState collapses the common (state, err) result into one write.
func (h *WSHandler) replyState(conn *websocket.Conn, state *model.AttemptState, err error) {
	if err != nil {
		ws.WriteError(conn, err.Error())
		return
	}
	ws.WriteTyped(conn, ws.StateResponse{Event: ws.EventState, State: state})
}

func (h *WSHandler) handleProctor(conn *websocket.Conn, ctx context.Context, attemptID string, msg *ws.RequestPayload) {
	verdict, err := h.attemptService.ProctorEvent(ctx, attemptID, &model.ProctorEventRequest{
		Type:   msg.EventType,
		Detail: msg.Detail,
	})
	if err != nil {
		ws.WriteError(conn, err.Error())
		return
	}
	ws.WriteTyped(conn, ws.VerdictResponse{Event: ws.EventVerdict, Verdict: verdict})

	// Escalation already forced the submission; push the outcome too so
	// the runner does not need a follow-up sync.
	if verdict.Escalated {
		if state, err := h.attemptService.State(attemptID); err == nil && state.Outcome != nil {
			ws.WriteTyped(conn, ws.SubmittedResponse{Event: ws.EventSubmitted, Outcome: state.Outcome})
		}
	}
}

func (h *WSHandler) handleSubmit(conn *websocket.Conn, ctx context.Context, wsLog zerolog.Logger, attemptID string) {
	outcome, err := h.attemptService.Submit(ctx, attemptID)
	if err != nil {
		ws.WriteError(conn, err.Error())
		return
	}

	wsLog.Info().
		Float64("percentage", outcome.Percentage).
		Int("correct", outcome.Correct).
		Int("total", outcome.Total).
		Msg("Attempt submitted over WebSocket")

	ws.WriteTyped(conn, ws.SubmittedResponse{Event: ws.EventSubmitted, Outcome: outcome})
}
