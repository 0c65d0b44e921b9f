package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantGuard rejects requests that reach a tenant-scoped route without a
// tenant claim in context. AuthMiddleware sets the claim; the guard is the
// backstop for misgrouped routes.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextKeyTenantID); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing tenant context"},
			})
			return
		}
		c.Next()
	}
}
