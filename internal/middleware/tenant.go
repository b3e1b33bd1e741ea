package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// TenantIDKey is the context key for the active tenant ID
	TenantIDKey = "tenant_id"
	// TenantIDHeader is the HTTP header carrying the active tenant
	TenantIDHeader = "X-Tenant-ID"
)

// RequireTenant rejects requests without a valid tenant ID header. The
// tenant is carried explicitly through the context so that no service ever
// resolves it from ambient state.
func RequireTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantIDHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":       "BAD_REQUEST",
					"message":    "Missing " + TenantIDHeader + " header",
					"request_id": GetRequestID(c),
				},
			})
			return
		}

		if _, err := uuid.Parse(tenantID); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{
					"code":       "BAD_REQUEST",
					"message":    TenantIDHeader + " must be a valid UUID",
					"request_id": GetRequestID(c),
				},
			})
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from the Gin context.
// Returns an empty string if not found.
func GetTenantID(c *gin.Context) string {
	if tenantID, exists := c.Get(TenantIDKey); exists {
		if id, ok := tenantID.(string); ok {
			return id
		}
	}
	return ""
}
