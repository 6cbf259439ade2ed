package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/customtee/platform-api/internal/application"
	"github.com/customtee/platform-api/pkg/response"
)

// Auth resolves the access token cookie against the Redis session and sets
// "userID" in the context. Requests without a valid session are rejected
// with 401 before any handler runs.
func Auth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}

		userID, err := auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired session", nil)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// AdminOnly gates a route group to active admin accounts. It re-reads the
// user on every request so a revoked admin flag takes effect immediately,
// not at next login.
func AdminOnly(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}

		u, err := auth.Me(c.Request.Context(), userID)
		if err != nil || !u.IsAdmin || u.IsDeleted {
			response.Error(c, http.StatusForbidden, "admin access required", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
