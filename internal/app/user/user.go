/*
Package user contains the identity of a signed-in Thinkle player.

It defines the User struct returned by the backend on login and registration and the
Session that binds a user to its bearer token for the lifetime of a login.
*/
package user

import "strings"

// User represents the player account as reported by the backend.
type User struct {
	// ID is the backend user identifier, sent as userId with every game call.
	ID int64 `json:"id"`

	// Username is the display name chosen at registration.
	Username string `json:"username"`

	// Email is the login email address.
	Email string `json:"email"`
}

// Session is the in-memory authentication state of one browser.
// A nil *Session, or one without a token, means the browser is signed out.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Authenticated reports whether s carries a user and a non-empty token.
func (s *Session) Authenticated() bool {
	return s != nil && s.User.ID != 0 && strings.TrimSpace(s.Token) != ""
}

// BearerToken returns the token to send in the Authorization header, or "".
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.Token)
}

// UserID returns the authenticated user id and whether one is available.
func (s *Session) UserID() (int64, bool) {
	if !s.Authenticated() {
		return 0, false
	}
	return s.User.ID, true
}
