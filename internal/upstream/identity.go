package upstream

import (
	"context"
	"encoding/json"
	"fmt"
)

// Identity is the authenticated learner resolved from the identity provider.
type Identity struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Key returns the usable student identifier, preferring the plain id field.
// Empty means the identity could not be resolved.
func (i *Identity) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.MongoID
}

// CurrentUser resolves the learner behind the given bearer token via
// GET /api/user/me. Both a bare identity object and a {data: {...}} envelope
// are accepted. A missing id is reported as ErrNotFound ("no authenticated
// learner"), which callers treat as the unauthenticated path, not a failure.
func (c *Client) CurrentUser(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	raw, err := c.get(ctx, "/api/user/me", token)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Identity
		Data *Identity `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}

	ident := envelope.Identity
	if ident.Key() == "" && envelope.Data != nil {
		ident = *envelope.Data
	}
	if ident.Key() == "" {
		return nil, ErrNotFound
	}
	return &ident, nil
}
