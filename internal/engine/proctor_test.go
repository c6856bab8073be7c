package engine

import "testing"

func TestMonitor_ClipboardAlwaysBlockedWithNotice(t *testing.T) {
	m := NewMonitor()

	for _, ev := range []EventType{EventCopy, EventCut, EventPaste} {
		// The notice repeats on every occurrence, not only the first.
		for i := 0; i < 3; i++ {
			v := m.Handle(ev)
			if !v.Blocked {
				t.Fatalf("%s: expected blocked", ev)
			}
			if v.Notice == "" {
				t.Fatalf("%s occurrence %d: expected a notice every time", ev, i+1)
			}
			if v.Escalated {
				t.Fatalf("%s: clipboard events must never escalate", ev)
			}
		}
	}
}

func TestMonitor_ContextMenuBlockedSilently(t *testing.T) {
	m := NewMonitor()

	v := m.Handle(EventContextMenu)
	if !v.Blocked {
		t.Fatal("expected contextmenu blocked")
	}
	if v.Notice != "" {
		t.Fatalf("expected no notice, got %q", v.Notice)
	}
}

func TestMonitor_BlurEscalatesOnFifth(t *testing.T) {
	m := NewMonitor()

	for i := 1; i < BlurLimit; i++ {
		v := m.Handle(EventBlur)
		if v.Escalated {
			t.Fatalf("blur %d escalated early", i)
		}
		if v.Notice == "" {
			t.Fatalf("blur %d: expected a warning notice", i)
		}
		if v.Remaining != BlurLimit-i {
			t.Fatalf("blur %d: expected remaining=%d, got %d", i, BlurLimit-i, v.Remaining)
		}
	}

	v := m.Handle(EventBlur)
	if !v.Escalated {
		t.Fatalf("blur %d should escalate", BlurLimit)
	}
	if v.Remaining != 0 {
		t.Fatalf("expected remaining=0 at escalation, got %d", v.Remaining)
	}
}

func TestMonitor_ClipboardDoesNotConsumeBlurAllowance(t *testing.T) {
	m := NewMonitor()

	for i := 0; i < 10; i++ {
		m.Handle(EventCopy)
		m.Handle(EventContextMenu)
	}
	if m.BlurCount() != 0 {
		t.Fatalf("non-blur events moved the counter to %d", m.BlurCount())
	}
}

func TestParseEventType(t *testing.T) {
	for _, raw := range []string{"copy", "cut", "paste", "contextmenu", "blur"} {
		if _, err := ParseEventType(raw); err != nil {
			t.Fatalf("%s should parse, got %v", raw, err)
		}
	}
	if _, err := ParseEventType("keydown"); err != ErrUnknownEvent {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}
