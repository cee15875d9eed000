// Package jwt verifies the bearer tokens issued by the identity service.
// This service never authenticates users itself; it only extracts the
// already-authenticated user id from the token claims.
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Service struct {
	secret string
}

func New(secret string) *Service { return &Service{secret: secret} }

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given user. Used by tests and local tooling;
// production tokens come from the identity service sharing the secret.
func (s *Service) Issue(userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

func (s *Service) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
