package auth

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesToken(t *testing.T) {
	s := NewSessions("hunter2", "secret", time.Hour)
	token, expires, err := s.Login(" hunter2 ")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestLoginRejects(t *testing.T) {
	_, _, err := NewSessions("hunter2", "secret", 0).Login("wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = NewSessions("", "secret", 0).Login("")
	assert.ErrorIs(t, err, ErrDisabled)

	_, _, err = NewSessions("pw", "", 0).Login("pw")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()
	require.NoError(t, r.Revoke(ctx, "a", time.Now().Add(time.Minute)))

	revoked, err := r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = r.IsRevoked(ctx, "b")
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	revoked, _ = r.IsRevoked(ctx, "old")
	assert.False(t, revoked)
}

func TestRedisRevoker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedisRevoker(client)
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "expired", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists("auth:revoked:expired"))
}
