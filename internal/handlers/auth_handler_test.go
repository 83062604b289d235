package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/middleware"
	"github.com/gracechurch/server/internal/models"
)

func TestSignupRejectsInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/auth/signup", Signup)

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"name": "Jane", "password": "secret123"}`},
		{"bad email", `{"name": "Jane", "email": "nope", "password": "secret123"}`},
		{"short password", `{"name": "Jane", "email": "jane@example.com", "password": "abc"}`},
		{"short name", `{"name": "J", "email": "jane@example.com", "password": "secret123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/v1/auth/signup", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSignupFailureStatus(t *testing.T) {
	status, message := signupFailureStatus(gorm.ErrDuplicatedKey)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, message, "already exists")

	status, _ = signupFailureStatus(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestLogoutClearsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/auth/logout", Logout)

	// Logout succeeds and expires the cookie even with no session at all.
	req := httptest.NewRequest("POST", "/v1/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AuthCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
	assert.True(t, cookies[0].HttpOnly)
}

func TestMeRequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/auth/me", Me)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIsProtectedOwner(t *testing.T) {
	t.Setenv("OWNER_EMAIL", "pastor@gracechurch.org")

	owner := models.User{Email: "pastor@gracechurch.org", Role: models.RoleOwner}
	member := models.User{Email: "member@gracechurch.org", Role: models.RoleUser}

	assert.True(t, isProtectedOwner(owner))
	assert.False(t, isProtectedOwner(member))

	t.Setenv("OWNER_EMAIL", "")
	assert.False(t, isProtectedOwner(owner))
}
