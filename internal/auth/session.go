// Package auth issues admin session tokens and tracks logged-out sessions.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrBadCredentials is returned when the admin password does not match.
	ErrBadCredentials = errors.New("auth: invalid credentials")
	// ErrDisabled is returned when no password or signing secret is configured.
	ErrDisabled = errors.New("auth: admin login disabled")
)

const adminSubject = "admin"

// Sessions issues HS256 session tokens for the single admin account.
type Sessions struct {
	password []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewSessions creates a session issuer. ttl defaults to 12h.
func NewSessions(password, secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Sessions{
		password: []byte(password),
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login checks password and returns a signed token with its expiry.
func (s *Sessions) Login(password string) (string, time.Time, error) {
	if len(s.password) == 0 || len(s.secret) == 0 {
		return "", time.Time{}, ErrDisabled
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(password)), s.password) != 1 {
		return "", time.Time{}, ErrBadCredentials
	}
	now := s.now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Revoker remembers logged-out token IDs until the token would have expired.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
