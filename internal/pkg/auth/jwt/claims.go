package jwt

import "github.com/golang-jwt/jwt"

// Claims is the subset of the Thinkle backend token claims the client looks at.
// The backend owns the signing key, so the client never verifies signatures; it only
// reads the expiry to drop stale logins early.
type Claims struct {
	// StandardClaims carries exp, iat, sub and iss.
	jwt.StandardClaims

	// Email is set by backends that embed the login email in the token.
	Email string `json:"email,omitempty"`
}
