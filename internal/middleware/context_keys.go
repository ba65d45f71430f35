package middleware

import (
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// roleKey is the key used to store the authenticated user's role.
const roleKey = contextKey("role")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return 0, false
	}
	userID, ok := userIDVal.(int64)
	return userID, ok
}

// GetRoleFromContext retrieves the authenticated user's role from the Gin
// context.
func GetRoleFromContext(c *gin.Context) (string, bool) {
	roleVal := c.Request.Context().Value(roleKey)
	if roleVal == nil {
		return "", false
	}
	role, ok := roleVal.(string)
	return role, ok
}
