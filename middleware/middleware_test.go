package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CyberSaikat/task-management-soft/models"
	"github.com/CyberSaikat/task-management-soft/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthedServer(t *testing.T, jwtService *services.JWTService) (http.Handler, *bool, **services.Claims) {
	t.Helper()

	reached := false
	var gotClaims *services.Claims

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return JWTAuth(jwtService)(next), &reached, &gotClaims
}

func TestJWTAuthMissingHeader(t *testing.T) {
	handler, reached, _ := newAuthedServer(t, services.NewJWTService([]byte("secret")))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	handler, reached, _ := newAuthedServer(t, services.NewJWTService([]byte("secret")))

	r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	r.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *reached)
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := services.NewJWTService([]byte("secret"))
	handler, reached, gotClaims := newAuthedServer(t, jwtService)

	token, err := jwtService.GenerateAuthToken("alice@example.com", models.RoleUser)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
	require.NotNil(t, *gotClaims)
	assert.Equal(t, "alice@example.com", (*gotClaims).Email)
	assert.Equal(t, models.RoleUser, (*gotClaims).Role)
}
