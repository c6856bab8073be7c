package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/config"
	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		UpstreamBaseURL: srv.URL,
		UpstreamTimeout: 5 * time.Second,
	}
	return New(cfg, zerolog.Nop()), srv
}

func TestExamBySlug_BareObject(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/exams/byslug/az-900" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"_id": "e1", "code": "AZ-900", "title": "Azure Fundamentals", "duration": 45,
		})
	}))

	exam, err := c.ExamBySlug(context.Background(), "az-900")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exam.ID != "e1" || exam.Code != "AZ-900" || exam.DurationMinutes != 45 {
		t.Fatalf("unexpected exam: %+v", exam)
	}
}

func TestExamBySlug_DataEnvelopeWithArray(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"_id":"e2","code":"SAA-C03","title":"AWS SAA"},{"_id":"e3","code":"other"}]}`))
	}))

	exam, err := c.ExamBySlug(context.Background(), "saa-c03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The first element wins.
	if exam.ID != "e2" {
		t.Fatalf("expected first array element, got %+v", exam)
	}
}

func TestExamBySlug_BareArray(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"e4","code":"CLF-C02","title":"AWS CP"}]`))
	}))

	exam, err := c.ExamBySlug(context.Background(), "clf-c02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exam.ID != "e4" {
		t.Fatalf("unexpected exam: %+v", exam)
	}
}

func TestExamBySlug_NotFoundVariants(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http 404", status: http.StatusNotFound, body: ""},
		{name: "empty array", status: http.StatusOK, body: `[]`},
		{name: "null body", status: http.StatusOK, body: `null`},
		{name: "empty envelope", status: http.StatusOK, body: `{"data":null}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))

			_, err := c.ExamBySlug(context.Background(), "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestQuestionsByProduct_Success(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/questions/product/az-900" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":[{"_id":"q1","questionType":"single","isSample":true}]}`))
	}))

	questions, err := c.QuestionsByProduct(context.Background(), "az-900")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "q1" || !questions[0].IsSample {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestQuestionsByProduct_FailureFlag(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"data":null}`))
	}))

	_, err := c.QuestionsByProduct(context.Background(), "az-900")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCurrentUser_Shapes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantID string
	}{
		{name: "bare identity", body: `{"id":"u1","name":"Asha"}`, wantID: "u1"},
		{name: "data envelope", body: `{"data":{"_id":"u2","name":"Basil"}}`, wantID: "u2"},
		{name: "mongo id only", body: `{"_id":"u3"}`, wantID: "u3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Fatalf("expected bearer token, got %q", got)
				}
				w.Write([]byte(tc.body))
			}))

			ident, err := c.CurrentUser(context.Background(), "tok")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ident.Key() != tc.wantID {
				t.Fatalf("expected id %s, got %s", tc.wantID, ident.Key())
			}
		})
	}
}

func TestCurrentUser_NoToken(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued without a token")
	}))

	if _, err := c.CurrentUser(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveResult(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/results/save" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload model.ResultPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.ExamCode != "AZ-900" || payload.Correct != 3 {
			t.Fatalf("unexpected payload: %+v", payload)
		}
		w.Write([]byte(`{"success":true,"data":{"_id":"res-1"},"isTempStudent":false}`))
	}))

	outcome, err := c.SaveResult(context.Background(), &model.ResultPayload{
		StudentID: "u1",
		ExamCode:  "AZ-900",
		Correct:   3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Success || outcome.ResultID() != "res-1" || outcome.IsTempStudent {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}
