package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Yossy4131/LT/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenIssuer = "sns"

// SessionTokenCodec signs session ids into the cookie value and reads them back.
type SessionTokenCodec struct {
	secret        []byte
	signingMethod jwt.SigningMethod
}

func NewSessionTokenCodec(secret, algorithm string) (*SessionTokenCodec, error) {
	if secret == "" {
		return nil, errors.New("session secret key is required")
	}

	var signingMethod jwt.SigningMethod
	switch algorithm {
	case "", "HS256":
		signingMethod = jwt.SigningMethodHS256
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported jwt algorithm: %s", algorithm)
	}

	return &SessionTokenCodec{secret: []byte(secret), signingMethod: signingMethod}, nil
}

func (c *SessionTokenCodec) Encode(session *domain.Session) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   session.ID,
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    sessionTokenIssuer,
	}

	token := jwt.NewWithClaims(c.signingMethod, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Decode returns the session id carried by a valid, unexpired token.
func (c *SessionTokenCodec) Decode(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != c.signingMethod.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithIssuer(sessionTokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token claims")
	}
	return claims.Subject, nil
}
