package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// QuestionsByProduct fetches the question list for an exam product via
// GET /api/questions/product/:slug. The payload is only consumed when the
// collaborator reports success=true; anything else is ErrUnavailable, which
// the loader downgrades to an empty question set.
func (c *Client) QuestionsByProduct(ctx context.Context, slug string) ([]model.Question, error) {
	raw, err := c.get(ctx, "/api/questions/product/"+url.PathEscape(slug), "")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Success bool             `json:"success"`
		Data    []model.Question `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	if !envelope.Success {
		return nil, ErrUnavailable
	}
	return envelope.Data, nil
}
