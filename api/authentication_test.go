package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/deskhive/deskhive-backend/models"
	"github.com/deskhive/deskhive-backend/utils"
)

const testTriggerSecret = "test-trigger-secret"

var testSigningKey = []byte("test-signing-key")

func callProtectedRoute(t *testing.T, configure func(r *http.Request)) (int, models.Caller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var caller models.Caller
	router := gin.New()
	auth := NewAuthentication(testTriggerSecret, testSigningKey)
	router.GET("/protected", auth.Middleware(), func(c *gin.Context) {
		caller = utils.CallerFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	configure(req)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder.Code, caller
}

func signTestToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(testSigningKey)
	assert.NoError(t, err)
	return signed
}

func TestAuthenticationMiddleware(t *testing.T) {
	t.Run("valid trigger secret resolves to a trusted caller", func(t *testing.T) {
		code, caller := callProtectedRoute(t, func(r *http.Request) {
			r.Header.Set(TriggerSecretHeader, testTriggerSecret)
		})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, models.TrustedCaller{}, caller)
	})

	t.Run("wrong trigger secret is rejected", func(t *testing.T) {
		code, _ := callProtectedRoute(t, func(r *http.Request) {
			r.Header.Set(TriggerSecretHeader, "wrong-secret")
		})

		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("valid bearer token resolves to an authenticated caller", func(t *testing.T) {
		userId := uuid.New()
		code, caller := callProtectedRoute(t, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signTestToken(t, userId.String()))
		})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, models.AuthenticatedCaller{UserId: userId}, caller)
	})

	t.Run("token with a non uuid subject is rejected", func(t *testing.T) {
		code, _ := callProtectedRoute(t, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signTestToken(t, "not-a-uuid"))
		})

		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: uuid.NewString(),
		})
		signed, err := token.SignedString([]byte("some-other-key"))
		assert.NoError(t, err)

		code, _ := callProtectedRoute(t, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+signed)
		})

		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("missing credentials are rejected", func(t *testing.T) {
		code, _ := callProtectedRoute(t, func(r *http.Request) {})

		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("malformed authorization header is rejected", func(t *testing.T) {
		code, _ := callProtectedRoute(t, func(r *http.Request) {
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		})

		assert.Equal(t, http.StatusUnauthorized, code)
	})
}
