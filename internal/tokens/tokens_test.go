package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	exp := time.Now().Add(AccessTTL).UTC()

	token, err := SignAccessToken(7, "admin", secret, exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "admin", claims.Role)
	userID, err := SubjectToUserID(claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(7, "customer", []byte("secret-a"), time.Now().Add(AccessTTL))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("secret-b"))
	require.Error(t, err)
}

func TestAccessToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, err := SignAccessToken(7, "customer", secret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	require.Error(t, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-refresh-secret")
	exp := time.Now().Add(RefreshTTL).UTC()
	jti := NewJTI()

	token, err := SignRefreshToken(7, secret, exp, jti)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, jti, claims.ID)
	userID, err := SubjectToUserID(claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestRefreshTokenRejectedAsAccessToken(t *testing.T) {
	t.Parallel()

	access := []byte("test-jwt-secret")
	refresh := []byte("test-refresh-secret")

	token, err := SignRefreshToken(7, refresh, time.Now().Add(RefreshTTL), NewJTI())
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, access)
	require.Error(t, err)
}
