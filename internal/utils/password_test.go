package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, VerifyPassword(hash, "correct horse battery"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "correct horse battery"))
}

func TestCheckPasswordPolicy(t *testing.T) {
	assert.NoError(t, CheckPasswordPolicy("12345678"))
	assert.NoError(t, CheckPasswordPolicy("a much longer passphrase"))

	assert.ErrorIs(t, CheckPasswordPolicy("1234567"), ErrPasswordTooShort)
	assert.ErrorIs(t, CheckPasswordPolicy(""), ErrPasswordTooShort)
}
