package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"facility-registry-api-server/internal/service"
)

// RequireAdmin gates mutating routes. The credential may arrive as a
// Bearer token (session token or raw secret) or in the X-Admin-Key
// header. Any verification failure fails closed with 401.
func RequireAdmin(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			credential = strings.TrimPrefix(authHeader, "Bearer ")
			if credential == authHeader {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				return
			}
		} else {
			credential = c.GetHeader("X-Admin-Key")
		}

		if credential == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Admin credential is required"})
			return
		}

		if err := sessions.VerifyCredential(c.Request.Context(), credential); err != nil {
			if errors.Is(err, service.ErrUnconfigured) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credential"})
			return
		}

		c.Next()
	}
}
