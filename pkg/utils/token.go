package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionClaims wraps the server-side session token. The signature keeps
// forged cookies from ever reaching the sessions table.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionToken string `json:"sid"`
}

func SignSessionToken(token uuid.UUID, userID uuid.UUID, expiresAt time.Time, secret []byte) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		SessionToken: token.String(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies the signature and expiry and returns the
// wrapped session token.
func ParseSessionToken(signed string, secret []byte) (uuid.UUID, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	if !parsed.Valid {
		return uuid.Nil, ErrInvalidSessionToken
	}

	token, err := uuid.Parse(claims.SessionToken)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad sid", ErrInvalidSessionToken)
	}
	return token, nil
}
