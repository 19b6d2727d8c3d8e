package auth

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth returns a middleware that redirects anonymous requests to the
// login page. Protected routes redirect rather than returning 401; these are
// HTML pages, not an API.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		identity, _ := IdentityFromSession(session)
		if err := CheckAuthenticated(identity); err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, identity)
		c.Next()
	}
}

// RequireAdmin returns a middleware that redirects non-admin requests to the
// home page. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := c.MustGet(ContextUserKey).(*Identity)
		if !ok {
			identity = nil
		}
		if err := CheckAdmin(identity); err != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity set by RequireAuth.
func IdentityFromContext(c *gin.Context) *Identity {
	identity, _ := c.Get(ContextUserKey)
	if id, ok := identity.(*Identity); ok {
		return id
	}
	return nil
}
