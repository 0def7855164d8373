package services

import (
	"testing"

	"github.com/CyberSaikat/task-management-soft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"))

	token, err := svc.GenerateAuthToken("alice@example.com", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestJWTServiceRejectsGarbage(t *testing.T) {
	svc := NewJWTService([]byte("test-secret"))

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestJWTServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService([]byte("secret-one"))
	verifier := NewJWTService([]byte("secret-two"))

	token, err := issuer.GenerateAuthToken("bob@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
