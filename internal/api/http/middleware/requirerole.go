package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

// RequireRole gates a route group behind a minimum role. It must run after
// Authenticate: a request with no user in context gets 401, an
// authenticated user below the required rank gets 403.
type RequireRole struct {
	contextManager model.ContextManager
}

// NewRequireRole creates a new RequireRole middleware instance.
func NewRequireRole(contextManager model.ContextManager) *RequireRole {
	return &RequireRole{contextManager: contextManager}
}

// Handler returns a gin middleware enforcing the given minimum role.
func (m *RequireRole) Handler(required model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := m.contextManager.GetUserFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid session",
			})
			return
		}

		if !user.Role.Satisfies(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}

		c.Next()
	}
}
