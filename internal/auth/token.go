package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/opticours-api/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies opaque session tokens.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// Issue returns a new token for userID. Every call yields a distinct token.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		ID:       utils.GenerateUUID(),
		IssuedAt: jwt.NewNumericDate(i.now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies tokenString and returns the user id it was issued for.
func (i *TokenIssuer) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
