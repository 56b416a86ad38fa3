package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	tokenID, token, err := svc.GenerateSessionToken(42, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, tokenID, claims.ID)
}

func TestTokenService_WrongSecret(t *testing.T) {
	_, token, err := NewTokenService("secret-a").GenerateSessionToken(42, "alice")
	assert.NoError(t, err)

	_, err = NewTokenService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.ExtractTokenID("")
	assert.Error(t, err)
}

func TestTokenService_ExtractTokenID(t *testing.T) {
	svc := NewTokenService("test-secret")

	tokenID, token, err := svc.GenerateSessionToken(42, "alice")
	assert.NoError(t, err)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}
