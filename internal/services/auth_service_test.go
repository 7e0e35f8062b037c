// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhub/marketplace-backend/internal/apperrors"
	"github.com/atelierhub/marketplace-backend/internal/config"
	"github.com/atelierhub/marketplace-backend/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Register(&RegisterRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "Password123",
			Role:     "buyer",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, models.RoleBuyer, resp.User.Role)
		assert.NotEqual(t, "Password123", resp.User.PasswordHash)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{
			Name:     "Ada Again",
			Email:    "ada@example.com",
			Password: "Password123",
			Role:     "buyer",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	})

	t.Run("weak password rejected", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{
			Name:     "Bob",
			Email:    "bob@example.com",
			Password: "short",
			Role:     "buyer",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := svc.Register(&RegisterRequest{
			Name:     "Eve",
			Email:    "eve@example.com",
			Password: "Password123",
			Role:     "superuser",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidInput))
	})
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "Password123",
		Role:     "buyer",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "Password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "WrongPass1"})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&LoginRequest{Email: "ghost@example.com", Password: "Password123"})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	})

	t.Run("deactivated account", func(t *testing.T) {
		require.NoError(t, db.Model(&models.User{}).
			Where("email = ?", "ada@example.com").
			Update("active", false).Error)

		_, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "Password123"})
		require.Error(t, err)
		assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	})
}

func TestRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testConfig())

	resp, err := svc.Register(&RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "Password123",
		Role:     "buyer",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken("not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
}
