package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/mahjong-scoreboard/internal/dependencies/clock"
)

// TokenIssuer issues and verifies signed, time-bound bearer tokens
type TokenIssuer interface {
	// Issue returns a token for subject valid for ttl
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify checks signature and expiry and returns the token's subject
	Verify(token string) (string, error)
}

// JWTIssuer implements TokenIssuer with HS256-signed JWTs
type JWTIssuer struct {
	secret []byte
	clock  clock.Clock
}

// Ensure JWTIssuer implements TokenIssuer
var _ TokenIssuer = (*JWTIssuer)(nil)

// NewJWTIssuer creates a JWT issuer signing with secret
func NewJWTIssuer(secret []byte, clock clock.Clock) (*JWTIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &JWTIssuer{secret: secret, clock: clock}, nil
}

// Issue signs a token carrying subject, issued-at and expiry claims
func (i *JWTIssuer) Issue(subject string, ttl time.Duration) (string, error) {
	now := i.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token and returns its subject. Any failure is ErrInvalidToken.
func (i *JWTIssuer) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
