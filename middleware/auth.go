package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/jwt"
)

const (
	// ContextUserID is the gin context key holding the authenticated
	// user's id.
	ContextUserID = "userID"
	// ContextUsername is the gin context key holding the authenticated
	// user's username.
	ContextUsername = "username"
)

// Auth verifies the bearer token and stores the caller's identity in the
// request context. Requests without a valid token get 401.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := manager.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
