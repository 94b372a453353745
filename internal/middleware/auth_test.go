package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, expiresIn time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "11111111-1111-1111-1111-111111111111",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newProtectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	m := NewAuthMiddleware(testSecret)
	router := gin.New()

	handlers := []gin.HandlerFunc{m.RequireAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, m.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString("user_id"),
			"role":   c.GetString("role"),
		})
	})

	router.GET("/protected", handlers...)
	return router
}

func get(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	router := newProtectedRouter()

	rec := get(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(router, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(router, signToken(t, "wrong-secret", "admin", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(router, signToken(t, testSecret, "admin", -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "expired token rejected")

	rec = get(router, signToken(t, testSecret, "admin", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "11111111-1111-1111-1111-111111111111")
}

func TestRequireRole(t *testing.T) {
	router := newProtectedRouter("admin")

	rec := get(router, signToken(t, testSecret, "staff", time.Hour))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin role required")

	rec = get(router, signToken(t, testSecret, "admin", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	router := newProtectedRouter("admin", "staff")

	for _, role := range []string{"admin", "staff"} {
		rec := get(router, signToken(t, testSecret, role, time.Hour))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := get(router, signToken(t, testSecret, "viewer", time.Hour))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
