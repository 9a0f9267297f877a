package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fabian692/ecommerce/internal/models"
)

func newAuthEnv(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	r, db := newTestRepo(t)
	return &AuthService{
		Repo:          r,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}, db
}

func TestRegister(t *testing.T) {
	svc, db := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "test_user", "password")
	require.NoError(t, err)
	assert.Equal(t, "test_user", user.Username)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "password", user.PasswordHash)

	_, err = svc.Register(ctx, "test_user", "other_password")
	require.ErrorIs(t, err, ErrAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "test_user").Count(&count).Error)
	assert.Equal(t, int64(1), count, "duplicate register must not add a row")
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "password")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, "test_user", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "test_user", "password")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "test_user", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, models.RoleCustomer, result.User.Role)

	_, err = svc.Login(ctx, "test_user", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureAdmin(t *testing.T) {
	svc, db := newAuthEnv(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin123"))

	result, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, result.User.Role)

	_, err = svc.Login(ctx, "admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// a second bootstrap must not reset the stored password
	require.NoError(t, svc.EnsureAdmin(ctx, "changed"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
}

func TestLogout_Idempotent(t *testing.T) {
	svc, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "test_user", "password")
	require.NoError(t, err)
	result, err := svc.Login(ctx, "test_user", "password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.RefreshToken))
	require.NoError(t, svc.Logout(ctx, result.RefreshToken))
	require.NoError(t, svc.Logout(ctx, "unknown-token"))
	require.NoError(t, svc.Logout(ctx, ""))
}

func TestRefresh_RotatesTokens(t *testing.T) {
	svc, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "test_user", "password")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "test_user", "password")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// the old refresh token is revoked by rotation
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// the new one still works
	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_RevokedAfterLogout(t *testing.T) {
	svc, _ := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "test_user", "password")
	require.NoError(t, err)
	login, err := svc.Login(ctx, "test_user", "password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))

	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
