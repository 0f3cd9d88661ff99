package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys set on admin login.
const (
	SessionUserIDKey   = "user_id"
	SessionUsernameKey = "username"
)

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(c *gin.Context) bool {
	return sessions.Default(c).Get(SessionUserIDKey) != nil
}

// AdminRequired rejects requests without an admin session.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		c.Next()
	}
}

// ReadOnlyUnlessAdmin lets safe methods through and requires an admin
// session for everything else.
func ReadOnlyUnlessAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}
		c.Next()
	}
}
