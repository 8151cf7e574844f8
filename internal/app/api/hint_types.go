package api

import (
	"context"
	"net/http"

	"thinkle/internal/app/game"
	"thinkle/internal/app/user"
)

// UpdateHintTypeRequest renames a hint type of the catalog.
type UpdateHintTypeRequest struct {
	CurrentType        string `json:"currentType"`
	UpdatedType        string `json:"updatedType"`
	UpdatedDisplayName string `json:"updatedDisplayName"`
}

// UpdateHintTypeResponse reports the catalog entry before and after an update.
type UpdateHintTypeResponse struct {
	OldHintType     game.HintType `json:"oldHintType"`
	UpdatedHintType game.HintType `json:"updatedHintType"`
}

type hintTypeRef struct {
	Type string `json:"type"`
}

// CreateHintType adds ht to the backend catalog.
func (c *Client) CreateHintType(ctx context.Context, auth *user.Session, ht game.HintType) (*game.HintType, error) {
	var out game.HintType
	if err := c.post(ctx, PathCreateHintType, auth, ht, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateHintType renames a catalog entry.
func (c *Client) UpdateHintType(ctx context.Context, auth *user.Session, in UpdateHintTypeRequest) (*UpdateHintTypeResponse, error) {
	var out UpdateHintTypeResponse
	if err := c.post(ctx, PathUpdateHintType, auth, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteHintType deactivates a catalog entry.
func (c *Client) DeleteHintType(ctx context.Context, auth *user.Session, hintType string) (*game.HintType, error) {
	var out game.HintType
	if err := c.do(ctx, http.MethodDelete, PathDeleteHintType, auth, hintTypeRef{Type: hintType}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReactivateHintType restores a deactivated catalog entry.
func (c *Client) ReactivateHintType(ctx context.Context, auth *user.Session, hintType string) (*game.HintType, error) {
	var out game.HintType
	if err := c.post(ctx, PathReactivateHintType, auth, hintTypeRef{Type: hintType}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
