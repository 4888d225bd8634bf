package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"certtrack-backend/internal/shared/server/respond"
)

const actorIDKey = "actorId"

// Actor lifts the acting identity from the X-Actor-Id header into context.
// Session verification happens upstream; this layer only needs a stable
// actor id for membership resolution and the audit trail.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		actorID := strings.TrimSpace(c.GetHeader("X-Actor-Id"))
		if actorID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing actor identity", nil)
			return
		}

		c.Set(actorIDKey, actorID)
		c.Next()
	}
}

// ActorIDFromContext fetches the actor id stored by Actor middleware.
func ActorIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(actorIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
