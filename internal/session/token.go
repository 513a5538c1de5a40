package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// flashClaims is the payload of the flash cookie.
type flashClaims struct {
	Messages []Message `json:"msgs"`
	jwt.RegisteredClaims
}

// signMessages builds and signs an HS256 JWT carrying msgs that expires
// after ttl.
func signMessages(secret []byte, msgs []Message, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := flashClaims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// parseMessages verifies the signature and expiry of raw and returns the
// carried messages.
func parseMessages(secret []byte, raw string) ([]Message, error) {
	claims := &flashClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("session: parse flash token: %w", err)
	}
	return claims.Messages, nil
}
