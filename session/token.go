package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenExpiry extracts the expiry from a bearer token without verifying
// the signature; the client holds no signing key, it only needs to know
// whether a restored session is worth presenting as logged in.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("token has no exp claim")
	}
	return time.Unix(int64(exp), 0), nil
}

// TokenExpired reports whether the token's expiry has passed. Tokens
// without a readable expiry are treated as expired.
func TokenExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return now.After(exp)
}
