package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	Cost = bcrypt.MinCost
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("p1")
	require.NoError(t, err)

	assert.NotEqual(t, "p1", hash)
	assert.NoError(t, CheckPassword(hash, "p1"))
	assert.ErrorIs(t, CheckPassword(hash, "p2"), ErrPasswordMismatch)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	err := CheckPassword("not-a-hash", "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasswordMismatch)
}
