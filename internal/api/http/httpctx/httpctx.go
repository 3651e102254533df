// Package httpctx carries the authenticated user through the request context.
package httpctx

import (
	"context"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

type contextKey struct{}

// userKey is the context key under which the authenticated user is stored.
var userKey = contextKey{}

// Manager represents an HTTP context manager for authenticated-user operations.
// It provides methods to set and retrieve the request user from a context.
type Manager struct{}

// NewManager creates a new HTTP context manager instance.
//
// Returns a pointer to the newly created Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext stores the authenticated user in the context.
// The stored user is expected to already be sanitized.
//
// Parameters:
//   - ctx: The request context
//   - user: The authenticated user to store
//
// Returns a new context carrying the user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
//
// Parameters:
//   - ctx: The request context
//
// Returns the user and a boolean indicating if a user was found.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
