package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndLogin(t *testing.T) {
	user, err := UserCreate("Alice", "alice.login@example.com", "a long password")
	require.NoError(t, err)
	assert.NotEmpty(t, user.PassSalt)
	assert.NotEqual(t, "a long password", user.Password)

	_, err = UserCreate("Alice Again", "alice.login@example.com", "whatever")
	assert.ErrorIs(t, err, ErrConflict)

	loggedIn, ok := UserLogin("alice.login@example.com", "a long password")
	require.True(t, ok)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, ok = UserLogin("alice.login@example.com", "wrong password")
	assert.False(t, ok)
	_, ok = UserLogin("nobody@example.com", "a long password")
	assert.False(t, ok)
}

func TestUserByEmail(t *testing.T) {
	user := testUser(t)
	found, err := UserByEmail(user.Email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)

	missing, err := UserByEmail("missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
