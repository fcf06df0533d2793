package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("super_password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "super_password123", hash)

	assert.True(t, CheckPasswordHash("super_password123", hash))
	assert.False(t, CheckPasswordHash("wrong_password", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("super_password123")
	require.NoError(t, err)
	second, err := HashPassword("super_password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short7!"))
	assert.NoError(t, ValidatePassword("long-enough"))
}
