package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracechurch/server/internal/models"
)

func TestIssueAndVerifyToken(t *testing.T) {
	user := models.User{
		ID:    42,
		Email: "jane@example.com",
		Role:  models.RoleOwner,
	}

	token, err := IssueToken(user, "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, models.RoleOwner, claims.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	user := models.User{ID: 1, Email: "a@b.com", Role: models.RoleUser}

	token, err := IssueToken(user, "secret-one")
	require.NoError(t, err)

	claims, err := VerifyToken(token, "secret-two")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestVerifyTokenGarbage(t *testing.T) {
	claims, err := VerifyToken("not.a.token", "test-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = VerifyToken("", "test-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
