package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ownerIDKey = contextKey("ownerID")

// OwnerHeader names the header carrying the caller's opaque owner identity.
// Authentication happens upstream (gateway); this service only scopes data by
// the identity it is handed.
const OwnerHeader = "X-Owner-ID"

// OwnerMiddleware requires the owner header on every request and stores its
// value in the Gin context.
func OwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetHeader(OwnerHeader)
		if ownerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": OwnerHeader + " header required"})
			return
		}
		c.Set(string(ownerIDKey), ownerID)
		c.Next()
	}
}

// GetOwnerIDFromContext retrieves the owner ID set by OwnerMiddleware. It
// returns the ID and a boolean indicating whether it was found.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(ownerIDKey))
	if !exists {
		return "", false
	}
	ownerID, ok := val.(string)
	if !ok {
		return "", false
	}
	return ownerID, true
}
