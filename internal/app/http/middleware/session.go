package middleware

import (
	"net/http"

	"highlaunchpad/config"
	"highlaunchpad/database"
	"highlaunchpad/internal/infra/identity"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the opaque auth cookie set by session-login.
const SessionCookieName = "__session"

// DevSessionValue is issued instead of a real session when the dev
// bypass flag is set; it maps to a fixed dev user.
const DevSessionValue = "dev-session"

// SessionAuth resolves the __session cookie to a user and stores
// user_id / email / role in the gin context.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session cookie missing"})
			c.Abort()
			return
		}

		if token == DevSessionValue {
			if !config.AUTH_DEV_BYPASS {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
				c.Abort()
				return
			}
			c.Set("user_id", uint(1))
			c.Set("email", "dev@localhost")
			c.Set("role", "admin")
			c.Next()
			return
		}

		user, err := identity.SessionUser(database.DB, token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			c.Abort()
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Role not found in session"})
			c.Abort()
			return
		}

		if value != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
