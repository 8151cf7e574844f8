package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// ErrOpaqueToken is returned by Inspect when the bearer token is not a JWT.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Inspect decodes the claims of tokenString without verifying its signature.
func Inspect(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrOpaqueToken
	}

	claims := &Claims{}
	parser := &jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Join(ErrOpaqueToken, err)
	}

	return claims, nil
}

// IsExpired reports whether tokenString is a JWT whose exp claim lies before now.
// Opaque tokens and JWTs without exp never expire on the client side; the backend
// remains the authority and rejects them when they are stale.
func IsExpired(tokenString string, now time.Time) bool {
	claims, err := Inspect(tokenString)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == 0 {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), true)
}

// ExpiresAt returns the expiry encoded in tokenString, if any.
func ExpiresAt(tokenString string) (time.Time, bool) {
	claims, err := Inspect(tokenString)
	if err != nil || claims.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.ExpiresAt, 0), true
}
