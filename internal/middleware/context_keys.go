package middleware

import (
	"context"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// Keys for the authenticated principal stored in the request context.
const (
	userIDKey   = contextKey("userID")
	userRoleKey = contextKey("userRole")
	usernameKey = contextKey("username")
)

// Principal is the caller identity extracted from a valid access token.
type Principal struct {
	UserID   int64
	Username string
	Role     domain.UserRole
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, userIDKey, p.UserID)
	ctx = context.WithValue(ctx, usernameKey, p.Username)
	return context.WithValue(ctx, userRoleKey, p.Role)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(int64)
	return userID, ok
}

// GetRoleFromContext retrieves the authenticated user's role.
func GetRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	role, ok := c.Request.Context().Value(userRoleKey).(domain.UserRole)
	return role, ok
}

// GetPrincipalFromContext returns everything the auth middleware stored.
func GetPrincipalFromContext(c *gin.Context) (Principal, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return Principal{}, false
	}
	role, _ := GetRoleFromContext(c)
	username, _ := c.Request.Context().Value(usernameKey).(string)
	return Principal{UserID: userID, Username: username, Role: role}, true
}
