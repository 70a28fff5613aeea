// Package token signs and verifies short-lived opaque tokens carrying
// arbitrary claims.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Codec issues and verifies signed claim sets.
type Codec interface {
	Issue(claims map[string]any, secret string, ttl time.Duration) (string, error)
	Verify(token, secret string) (map[string]any, error)
}

// JWTCodec is an HS256 Codec.
type JWTCodec struct {
	now func() time.Time
}

func NewJWTCodec() *JWTCodec {
	return &JWTCodec{now: time.Now}
}

// Issue signs claims with secret; the token expires after ttl.
func (c *JWTCodec) Issue(claims map[string]any, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("issue token: empty secret")
	}

	now := c.now()
	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["iat"] = jwt.NewNumericDate(now)
	mapClaims["exp"] = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the caller's claims
// without the registered iat/exp entries.
func (c *JWTCodec) Verify(tokenStr, secret string) (map[string]any, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrInvalidToken)
	}

	mapClaims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, mapClaims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims := make(map[string]any, len(mapClaims))
	for k, v := range mapClaims {
		if k == "iat" || k == "exp" {
			continue
		}
		claims[k] = v
	}
	return claims, nil
}
