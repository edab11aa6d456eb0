package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gallery-app/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func authRouter(t *testing.T, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.JWT_SECRET = "test-secret"
	t.Cleanup(func() { config.JWT_SECRET = "" })

	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": uid})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r := authRouter(t)
	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"email":   "a@b.c",
		"role":    "collector",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := authRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code, "missing header")
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Token abc").Code, "not a bearer token")
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer not.a.jwt").Code)

	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+wrongKey).Code)

	expired := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 42,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+expired).Code)
}

func TestRequireRole(t *testing.T) {
	r := authRouter(t, RequireRole("artist", "admin"))

	artist := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 1,
		"role":    "artist",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+artist).Code)

	collector := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 2,
		"role":    "collector",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+collector).Code)
}
