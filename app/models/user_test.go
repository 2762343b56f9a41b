package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	u, err := CreateUser("Jane Doe", "jane@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.Equal(t, ROLE_USER, u.Role)
	assert.True(t, u.IsActive())
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("ab", "jane@example.com", "secret123")
	assert.Error(t, err, "name below minimum length")

	_, err = CreateUser("Jane Doe", "not-an-email", "secret123")
	assert.Error(t, err)

	_, err = CreateUser("Jane Doe", "jane@example.com", "short")
	assert.Error(t, err)
}
