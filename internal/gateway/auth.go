package gateway

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reads the exp claim of a bearer token without verifying its
// signature. Tokens that are not JWTs, or carry no exp, are never considered
// expired here; the server still has the final word.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
