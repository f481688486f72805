package security

import (
	"Showcase/internal/api/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	v := NewTokenVerifier(config.JWTConfig{Secret: "s3cret", Issuer: "Showcase"})
	token, err := v.GenerateToken(42, []string{"merchant"}, time.Hour)
	require.NoError(t, err)

	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, []string{"merchant"}, claims.Roles)
}

func TestTokenRejected(t *testing.T) {
	v := NewTokenVerifier(config.JWTConfig{Secret: "s3cret", Issuer: "Showcase"})

	expired, err := v.GenerateToken(1, nil, -time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	other := NewTokenVerifier(config.JWTConfig{Secret: "other", Issuer: "Showcase"})
	forged, err := other.GenerateToken(1, nil, time.Hour)
	require.NoError(t, err)
	_, err = v.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	wrongIssuer := NewTokenVerifier(config.JWTConfig{Secret: "s3cret", Issuer: "Elsewhere"})
	tok, err := wrongIssuer.GenerateToken(1, nil, time.Hour)
	require.NoError(t, err)
	_, err = v.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewTokenVerifier(config.JWTConfig{}).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", tok)

	_, ok = BearerToken("Basic xyz")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}
