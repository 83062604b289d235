package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Routes behind the session gate reject anonymous callers before any
// handler touches the database, so a nil database is fine here.
func TestProtectedRoutesRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	setupRoutes(r, nil, nil, nil)

	paths := []string{
		"/v1/donations/summary",
		"/v1/donations/history",
		"/v1/admin/donations/summary",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
