package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_KEY", "test-signing-key")

	token, err := GenerateJWT("admin-1")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
}

func TestValidateJWTRejectsTampering(t *testing.T) {
	t.Setenv("JWT_KEY", "test-signing-key")

	token, err := GenerateJWT("admin-1")
	require.NoError(t, err)

	t.Setenv("JWT_KEY", "different-key")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}
