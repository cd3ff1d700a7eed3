package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationMinutes: 5}
	user := &models.User{
		BaseModel: models.BaseModel{ID: 42},
		Username:  "drhouse",
		Role:      models.RoleDoctor,
	}

	token, err := GenerateAccessToken(user, cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg.JWTSecret)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, models.RoleDoctor, claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpirationMinutes: 5}
	user := &models.User{BaseModel: models.BaseModel{ID: 1}, Role: models.RoleAdmin}

	token, err := GenerateAccessToken(user, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}
