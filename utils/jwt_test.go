// utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "alice@campus.edu")
	require.NoError(t, err)

	claims, err := VerifyAccessToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice@campus.edu", claims.Email)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(42, "alice@campus.edu")
	require.NoError(t, err)

	claims, err := VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
}

func TestTokenSecretsAreNotInterchangeable(t *testing.T) {
	access, err := GenerateAccessToken(42, "alice@campus.edu")
	require.NoError(t, err)

	_, err = VerifyRefreshToken(access)
	assert.Error(t, err, "an access token must not pass refresh verification")
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	_, err := VerifyAccessToken("not-a-jwt")
	assert.Error(t, err)
}
