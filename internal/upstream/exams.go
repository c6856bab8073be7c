package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// ExamBySlug fetches exam metadata via GET /api/exams/byslug/:slug.
// The endpoint historically answered with three different shapes (a bare
// exam object, a {data: [...]} envelope, or a bare array), so the response
// is normalized here, once, instead of shape-sniffing in business logic.
func (c *Client) ExamBySlug(ctx context.Context, slug string) (*model.Exam, error) {
	raw, err := c.get(ctx, "/api/exams/byslug/"+url.PathEscape(slug), "")
	if err != nil {
		return nil, err
	}

	exam, err := normalizeExamResponse(raw)
	if err != nil {
		return nil, fmt.Errorf("exam byslug %q: %w", slug, err)
	}
	return exam, nil
}

// normalizeExamResponse collapses the three historical response shapes into
// one exam. Arrays yield their first element; empty results map to ErrNotFound.
func normalizeExamResponse(raw []byte) (*model.Exam, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrNotFound
	}

	if raw[0] == '[' {
		var list []model.Exam
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode exam array: %w", err)
		}
		if len(list) == 0 {
			return nil, ErrNotFound
		}
		return &list[0], nil
	}

	// An object may be the exam itself or a {data: ...} envelope whose data
	// is again either an object or an array.
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if inner := bytes.TrimSpace(envelope.Data); len(inner) > 0 && !bytes.Equal(inner, []byte("null")) {
			return normalizeExamResponse(inner)
		}
	}

	var exam model.Exam
	if err := json.Unmarshal(raw, &exam); err != nil {
		return nil, fmt.Errorf("decode exam object: %w", err)
	}
	if exam.ID == "" && exam.Code == "" && exam.Title == "" {
		return nil, ErrNotFound
	}
	return &exam, nil
}
