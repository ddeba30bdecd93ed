// README: Bearer-token auth middleware and caller context helpers.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"omaga/internal/modules/identity"
	"omaga/internal/types"
)

const callerKey = "omaga.caller"

// Authenticator resolves a raw bearer token to the signed-in user. Implemented
// by identity.Service.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*identity.User, error)
}

// Auth rejects requests without a valid bearer token and stores the resolved
// user on the request context.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(callerKey, user)
		c.Next()
	}
}

// RequireRole gates a route group to one role. Runs after Auth.
func RequireRole(role types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := Caller(c)
		if caller == nil || caller.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// Caller returns the authenticated user set by Auth, or nil.
func Caller(c *gin.Context) *identity.User {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	u, _ := v.(*identity.User)
	return u
}

// BearerToken extracts the token from an Authorization header, or returns ""
// when the header is missing or not of the Bearer scheme.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
