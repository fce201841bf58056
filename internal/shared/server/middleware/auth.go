package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gradmatch-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Identity resolves the caller from the X-Guest-Id header and stores it in
// the request context. Identities are namespaced with a guest: prefix so
// stored rows stay distinguishable if account-backed identities arrive later.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}

		c.Set(userIDKey, "guest:"+guestID)
		c.Set("isGuest", true)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
