package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuscliq/campuscliq-server/internal/identity"
	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
)

// Authenticate validates bearer tokens and injects the resolved user into
// the request context. Every failure to establish identity is answered with
// the same generic 401 body; a store outage is the one exception and is
// answered with 503 so clients do not treat it as a dead session.
type Authenticate struct {
	provider       identity.Provider
	contextManager model.ContextManager
	storeTimeout   time.Duration
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	provider identity.Provider,
	contextManager model.ContextManager,
	storeTimeout time.Duration,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		provider:       provider,
		contextManager: contextManager,
		storeTimeout:   storeTimeout,
		logger:         logger,
	}
}

// Handler returns the gin middleware function.
func (m *Authenticate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))

		ctx := c.Request.Context()
		if m.storeTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.storeTimeout)
			defer cancel()
		}

		user, err := m.provider.Identify(ctx, token)
		if err != nil {
			if errors.Is(err, model.ErrStoreUnavailable) {
				m.logger.Error("Authenticate middleware: user store unavailable",
					"path", c.Request.URL.Path,
					"error", err.Error())
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error": "service temporarily unavailable",
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid session",
			})
			return
		}

		c.Request = c.Request.WithContext(
			m.contextManager.SetUserToContext(c.Request.Context(), user))
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
// Returns "" when the header is absent or not in Bearer form.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
