package engine

import (
	"errors"
	"fmt"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// BlurLimit is the number of tab/window focus losses tolerated before the
// attempt is force-submitted.
const BlurLimit = 5

// EventType enumerates the proctoring events reported by the runner UI.
type EventType string

const (
	EventCopy        EventType = "copy"
	EventCut         EventType = "cut"
	EventPaste       EventType = "paste"
	EventContextMenu EventType = "contextmenu"
	EventBlur        EventType = "blur"
)

// ErrUnknownEvent is returned for event types the monitor does not track.
var ErrUnknownEvent = errors.New("unknown proctoring event type")

// ParseEventType validates a raw event type string.
func ParseEventType(raw string) (EventType, error) {
	switch EventType(raw) {
	case EventCopy, EventCut, EventPaste, EventContextMenu, EventBlur:
		return EventType(raw), nil
	}
	return "", ErrUnknownEvent
}

// Monitor tracks proctoring state for ONE attempt. It is deliberately
// session-scoped, not process-global: two concurrent attempts must not
// share a blur counter.
//
// This is a soft deterrent, not a security boundary; a determined user
// can bypass any of it. Treat the verdicts as best-effort UX.
type Monitor struct {
	blurCount int
	limit     int
}

// NewMonitor creates a monitor with the standard blur allowance.
func NewMonitor() *Monitor {
	return &Monitor{limit: BlurLimit}
}

// BlurCount returns the number of focus losses recorded so far.
func (m *Monitor) BlurCount() int { return m.blurCount }

// Handle applies one proctoring event and returns the verdict:
//   - copy/cut/paste: always blocked, with a notice on every occurrence
//   - contextmenu: always suppressed, silently
//   - blur: increments the counter; below the limit the verdict names the
//     remaining allowance, on the limit it escalates to forced submission
//
// Escalation itself is the session's job; the monitor only reports it.
func (m *Monitor) Handle(ev EventType) model.ProctorVerdict {
	switch ev {
	case EventCopy, EventCut, EventPaste:
		return model.ProctorVerdict{
			Blocked:   true,
			Notice:    "Copying and pasting are disabled during the exam.",
			Remaining: m.limit - m.blurCount,
		}

	case EventContextMenu:
		return model.ProctorVerdict{
			Blocked:   true,
			Remaining: m.limit - m.blurCount,
		}

	case EventBlur:
		m.blurCount++
		if m.blurCount >= m.limit {
			return model.ProctorVerdict{
				Notice:    "You left the exam tab too many times. Your exam is being submitted.",
				Remaining: 0,
				Escalated: true,
			}
		}
		remaining := m.limit - m.blurCount
		return model.ProctorVerdict{
			Notice:    fmt.Sprintf("Warning: do not leave the exam tab. %d warnings remaining before auto-submission.", remaining),
			Remaining: remaining,
		}
	}

	return model.ProctorVerdict{}
}
