package api

import (
	"context"
	"strings"

	"thinkle/internal/app/user"
	"thinkle/internal/pkg/errs"
)

// LoginRequest is the body of the login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of the registration call.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the data returned by login and registration. Older backends send
// the account under user instead of userInfo.
type AuthResponse struct {
	Token    string     `json:"token"`
	Message  string     `json:"message"`
	UserInfo *user.User `json:"userInfo"`
	User     *user.User `json:"user"`
}

// Session returns the authentication state described by the response.
func (r *AuthResponse) Session() (*user.Session, error) {
	account := r.UserInfo
	if account == nil {
		account = r.User
	}
	if account == nil {
		return nil, &errs.APIError{Code: errs.NetworkErrorCode, Message: "No user information received from server."}
	}
	if strings.TrimSpace(r.Token) == "" {
		return nil, &errs.APIError{Code: errs.NetworkErrorCode, Message: "No token received from server."}
	}
	return &user.Session{User: *account, Token: r.Token}, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, in LoginRequest) (*user.Session, error) {
	return c.authenticate(ctx, PathLogin, in)
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (*user.Session, error) {
	return c.authenticate(ctx, PathRegister, in)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*user.Session, error) {
	var out AuthResponse
	if err := c.post(ctx, path, nil, body, &out); err != nil {
		return nil, err
	}

	session, err := out.Session()
	if err != nil {
		return nil, err
	}
	c.logger.Info().Int64("user_id", session.User.ID).Str("path", path).Msg("Backend authentication succeeded")
	return session, nil
}
