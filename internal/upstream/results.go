package upstream

import (
	"context"

	"github.com/corporateprepmantras-collab/dumpsexpert-exam-engine/internal/model"
)

// SaveOutcome is the results collaborator's answer to a save request.
type SaveOutcome struct {
	Success bool `json:"success"`
	Data    *struct {
		ID string `json:"_id"`
	} `json:"data"`
	IsTempStudent bool `json:"isTempStudent"`
}

// ResultID returns the persisted record id, or "" when nothing was stored.
func (o *SaveOutcome) ResultID() string {
	if o == nil || o.Data == nil {
		return ""
	}
	return o.Data.ID
}

// SaveResult posts the graded payload via POST /api/results/save.
func (c *Client) SaveResult(ctx context.Context, payload *model.ResultPayload) (*SaveOutcome, error) {
	var outcome SaveOutcome
	if err := c.postJSON(ctx, "/api/results/save", payload, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}
