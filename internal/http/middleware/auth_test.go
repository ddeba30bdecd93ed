// README: Auth middleware tests with a stub authenticator.
package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"omaga/internal/http/middleware"
	"omaga/internal/modules/identity"
	"omaga/internal/types"
)

// stubAuthenticator is a test double for middleware.Authenticator.
type stubAuthenticator struct {
	user *identity.User
	err  error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _ string) (*identity.User, error) {
	return s.user, s.err
}

func buildRouter(auth middleware.Authenticator, role types.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/", middleware.Auth(auth))
	g.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": middleware.Caller(c).ID})
	})
	g.GET("/gated", middleware.RequireRole(role), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	r := buildRouter(&stubAuthenticator{err: errors.New("should not be called")}, types.RoleAdmin)
	w := get(r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthBadToken(t *testing.T) {
	r := buildRouter(&stubAuthenticator{err: identity.ErrUnauthenticated}, types.RoleAdmin)
	w := get(r, "/whoami", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthSetsCaller(t *testing.T) {
	r := buildRouter(&stubAuthenticator{user: &identity.User{ID: "u1", Role: types.RoleCustomer}}, types.RoleAdmin)
	w := get(r, "/whoami", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"Bearer  abc ", "abc"},
		{"bearer abc", ""},
		{"Basic abc", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, middleware.BearerToken(req), "header %q", tc.header)
	}
}

func TestRequireRole(t *testing.T) {
	admin := &identity.User{ID: "a1", Role: types.RoleAdmin}
	customer := &identity.User{ID: "u1", Role: types.RoleCustomer}

	w := get(buildRouter(&stubAuthenticator{user: admin}, types.RoleAdmin), "/gated", "Bearer t")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(buildRouter(&stubAuthenticator{user: customer}, types.RoleAdmin), "/gated", "Bearer t")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
