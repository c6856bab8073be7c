package model

import "testing"

func boolPtr(b bool) *bool { return &b }

func TestPublishedFrom(t *testing.T) {
	tests := []struct {
		name        string
		isPublished *bool
		published   *bool
		status      string
		want        bool
	}{
		{name: "isPublished true wins", isPublished: boolPtr(true), status: "draft", want: true},
		{name: "isPublished false wins", isPublished: boolPtr(false), status: "published", want: false},
		{name: "published true wins", published: boolPtr(true), status: "draft", want: true},
		{name: "published false wins", published: boolPtr(false), want: false},
		{name: "isPublished beats published", isPublished: boolPtr(false), published: boolPtr(true), want: false},
		{name: "status published", status: "published", want: true},
		{name: "status Publish mixed case", status: "Publish", want: true},
		{name: "status active", status: "active", want: true},
		{name: "status live", status: "live", want: true},
		{name: "status draft", status: "draft", want: false},
		{name: "status unpublished", status: "unpublished", want: false},
		{name: "status inactive", status: "inactive", want: false},
		{name: "status hidden", status: "hidden", want: false},
		{name: "status archived", status: "archived", want: false},
		{name: "unknown status defaults permissive", status: "pending-review", want: true},
		{name: "nothing set defaults permissive", want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Exam{IsPublishedFlag: tc.isPublished, PublishedFlag: tc.published, Status: tc.status}
			if got := e.Published(); got != tc.want {
				t.Fatalf("exam: expected %v, got %v", tc.want, got)
			}
			q := Question{IsPublishedFlag: tc.isPublished, PublishedFlag: tc.published, Status: tc.status}
			if got := q.Published(); got != tc.want {
				t.Fatalf("question: expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestAttemptDurationMinutes(t *testing.T) {
	tests := []struct {
		name       string
		duration   int
		sample     int
		sampleOnly bool
		want       int
	}{
		{name: "main uses duration", duration: 90, sample: 15, sampleOnly: false, want: 90},
		{name: "trial prefers sampleDuration", duration: 90, sample: 15, sampleOnly: true, want: 15},
		{name: "trial falls back to duration", duration: 90, sampleOnly: true, want: 90},
		{name: "trial falls back to default", sampleOnly: true, want: DefaultDurationMinutes},
		{name: "main falls back to default", sampleOnly: false, want: DefaultDurationMinutes},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Exam{DurationMinutes: tc.duration, SampleDurationMinutes: tc.sample}
			if got := e.AttemptDurationMinutes(tc.sampleOnly); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestNormalizeQuestionType(t *testing.T) {
	tests := []struct {
		raw  string
		want QuestionType
	}{
		{raw: "single", want: QuestionTypeSingle},
		{raw: "multiple", want: QuestionTypeMultiple},
		{raw: "Multi-Choice", want: QuestionTypeMultiple},
		{raw: "checkbox", want: QuestionTypeMultiple},
		{raw: "matching", want: QuestionTypeMatching},
		{raw: " match ", want: QuestionTypeMatching},
		{raw: "radio", want: QuestionTypeSingle},
		{raw: "", want: QuestionTypeSingle},
	}

	for _, tc := range tests {
		if got := NormalizeQuestionType(tc.raw); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}
