package api

import (
	"context"

	"thinkle/internal/app/game"
	"thinkle/internal/app/user"
	"thinkle/internal/pkg/errs"
)

type sessionRequest struct {
	UserID int64 `json:"userId"`
}

type guessRequest struct {
	UserID      int64  `json:"userId"`
	GuessedWord string `json:"guessedWord"`
}

type hintRequest struct {
	UserID   int64  `json:"userId"`
	HintType string `json:"hintType"`
}

// CreateSession starts (or resumes) the game of the signed-in user.
func (c *Client) CreateSession(ctx context.Context, auth *user.Session) (*game.GameSession, error) {
	userID, ok := auth.UserID()
	if !ok {
		return nil, errs.ErrNotAuthenticated
	}

	var session game.GameSession
	if err := c.post(ctx, PathGameSession, auth, sessionRequest{UserID: userID}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// FetchSession returns the current snapshot. The backend serves it from the session
// creation endpoint.
func (c *Client) FetchSession(ctx context.Context, auth *user.Session) (*game.GameSession, error) {
	return c.CreateSession(ctx, auth)
}

// SubmitGuess scores word for the signed-in user.
func (c *Client) SubmitGuess(ctx context.Context, auth *user.Session, word string) (*game.GuessOutcome, error) {
	userID, ok := auth.UserID()
	if !ok {
		return nil, errs.ErrNotAuthenticated
	}

	var outcome game.GuessOutcome
	if err := c.post(ctx, PathSubmitGuess, auth, guessRequest{UserID: userID, GuessedWord: word}, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

// GetHint reveals a hint of hintType, at the cost of a life.
func (c *Client) GetHint(ctx context.Context, auth *user.Session, hintType string) (*game.HintOutcome, error) {
	userID, ok := auth.UserID()
	if !ok {
		return nil, errs.ErrNotAuthenticated
	}

	var outcome game.HintOutcome
	if err := c.post(ctx, PathGetHint, auth, hintRequest{UserID: userID, HintType: hintType}, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

var _ game.Backend = (*Client)(nil)
