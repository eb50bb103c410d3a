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

var testSecret = []byte("test-jwt-secret-key-32-characters")

func setupProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", JWTAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString("userID"),
			"username": c.GetString("username"),
		})
	})
	return router
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := setupProtectedRouter()

	w := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authorization_required")
}

func TestJWTAuthNonBearerScheme(t *testing.T) {
	router := setupProtectedRouter()

	w := doRequest(router, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestJWTAuthEmptyToken(t *testing.T) {
	router := setupProtectedRouter()

	w := doRequest(router, "Bearer ")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestJWTAuthValidToken(t *testing.T) {
	router := setupProtectedRouter()

	token := signToken(t, testSecret, jwt.MapClaims{
		"uid":      "user_001",
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	})
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user_001"`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	router := setupProtectedRouter()

	token := signToken(t, []byte("some-other-secret"), jwt.MapClaims{
		"uid": "user_001",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_token")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router := setupProtectedRouter()

	token := signToken(t, testSecret, jwt.MapClaims{
		"uid": "user_001",
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
	})
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthNotYetValidToken(t *testing.T) {
	router := setupProtectedRouter()

	token := signToken(t, testSecret, jwt.MapClaims{
		"uid": "user_001",
		"exp": time.Now().Add(2 * time.Hour).Unix(),
		"nbf": time.Now().Add(time.Hour).Unix(),
	})
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMissingUIDClaim(t *testing.T) {
	router := setupProtectedRouter()

	token := signToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "uid")
}
