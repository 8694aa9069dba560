package jwt

import (
	"testing"

	"marketplace-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndResolveToken(t *testing.T) {
	service := NewJWTServiceWithSecret("test-secret-key-for-unit-tests")

	token := service.GenerateTokenUser("2b6f7a44-9e2c-4a8f-8d1a-111111111111", domain.RoleUser)
	require.NotEmpty(t, token)

	userID, role, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "2b6f7a44-9e2c-4a8f-8d1a-111111111111", userID)
	assert.Equal(t, domain.RoleUser, role)
}

func TestResolveToken_Invalid(t *testing.T) {
	service := NewJWTServiceWithSecret("test-secret-key-for-unit-tests")

	_, _, err := service.GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResolveToken_WrongSecret(t *testing.T) {
	issuer := NewJWTServiceWithSecret("secret-one")
	verifier := NewJWTServiceWithSecret("secret-two")

	token := issuer.GenerateTokenUser("2b6f7a44-9e2c-4a8f-8d1a-111111111111", domain.RoleUser)

	_, _, err := verifier.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
