package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-recommender/backend/internal/types"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.GenerateToken("ops", types.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.True(t, claims.IsAdmin())
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewTokenService("test-secret")

	expired, err := svc.GenerateToken("ops", types.RoleAdmin, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewTokenService("other-secret").GenerateToken("ops", types.RoleAdmin, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenServiceWithoutSecret(t *testing.T) {
	svc := NewTokenService("")

	_, err := svc.GenerateToken("ops", types.RoleAdmin, time.Hour)
	assert.Error(t, err)
	_, err = svc.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
