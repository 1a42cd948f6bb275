package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// CookieCodec seals a TokenState into a signed session cookie and opens it
// back up on the next request. The cookie JWT is the gateway's own; its
// signature only proves the browser did not tamper with the state, it says
// nothing about the upstream tokens carried inside.
type CookieCodec struct {
	name   string
	secret []byte
	ttl    time.Duration
}

// NewCookieCodec builds a codec for the named cookie.
func NewCookieCodec(name, secret string, ttl time.Duration) *CookieCodec {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &CookieCodec{name: name, secret: []byte(secret), ttl: ttl}
}

// Name returns the cookie name the codec reads and writes.
func (c *CookieCodec) Name() string {
	return c.name
}

// TTL returns the cookie lifetime.
func (c *CookieCodec) TTL() time.Duration {
	return c.ttl
}

type sessionClaims struct {
	State TokenState `json:"state"`
	jwt.RegisteredClaims
}

// Encode signs the state into a cookie value.
func (c *CookieCodec) Encode(state TokenState) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		State: state,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies and unpacks a cookie value. Anything that does not verify
// cleanly (tampered, expired, wrong algorithm) decodes to no state at all,
// which downstream treats as an unauthenticated visitor.
func (c *CookieCodec) Decode(value string) (TokenState, bool) {
	if value == "" {
		return TokenState{}, false
	}

	parsed, err := jwt.ParseWithClaims(value, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return TokenState{}, false
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return TokenState{}, false
	}
	return claims.State, true
}
