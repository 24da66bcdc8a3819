package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// CookieCodec signs and verifies the session cookie. The browser only ever
// holds the session ID wrapped in an HS256 JWT; the bearer token stays on the
// gateway side.
type CookieCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCookieCodec creates a cookie codec.
func NewCookieCodec(secret, issuer string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue wraps a session ID into a signed cookie value.
func (c *CookieCodec) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iss": c.issuer,
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode extracts the session ID from a cookie value, rejecting bad
// signatures, foreign signing methods, and expired cookies.
func (c *CookieCodec) Decode(value string) (string, error) {
	token, err := jwt.Parse(value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrSessionNotFound
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrSessionNotFound
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrSessionNotFound
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return "", domain.ErrSessionExpired
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}
