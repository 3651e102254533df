package model

import "context"

// ContextManager attaches the authenticated, sanitized user to a request
// context and retrieves it downstream.
type ContextManager interface {
	SetUserToContext(ctx context.Context, user User) context.Context
	GetUserFromContext(ctx context.Context) (User, bool)
}
