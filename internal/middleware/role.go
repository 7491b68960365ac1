package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireRole aborts with 403 unless the authenticated caller has one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		role, ok := GetRoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !allowed[role] {
			GetLoggerFromCtx(c.Request.Context()).Warn("Role not permitted", slog.String("role", string(role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
