package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lakshmanbhukya/threadly-backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)

	_, err := uuid.Parse(first)
	assert.NoError(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	userID := GenerateID()
	token, err := GenerateToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: "first-secret"}
	token, err := GenerateToken("user1")
	assert.NoError(t, err)

	config.AppConfig = &config.Config{JWTSecret: "other-secret"}
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
