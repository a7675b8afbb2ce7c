package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs an HS256 token whose subject is the user id.
func IssueToken(userID string, secret []byte, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
