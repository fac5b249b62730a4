package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUsable reports whether the cached bearer token is still worth sending:
// it parses the JWT without verifying the signature (the signing key belongs
// to the backend) and checks the expiry claim against now. This is a
// round-trip saver, not a security boundary; the backend verifies every call.
func TokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		// Opaque (non-JWT) tokens are passed through; only the backend can
		// judge them.
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return now.Before(exp.Time)
}
