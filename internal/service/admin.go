package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
)

// SessionRevoker kills every live session of a user.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}

// Admin implements superAdmin-only user management.
type Admin struct {
	userStore model.UserStore
	sessions  SessionRevoker
	logger    *logger.Logger
}

func NewAdmin(userStore model.UserStore, sessions SessionRevoker, logger *logger.Logger) *Admin {
	return &Admin{userStore: userStore, sessions: sessions, logger: logger}
}

func (s *Admin) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

// VerifyUser marks a user as campus-verified.
func (s *Admin) VerifyUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	user.IsVerified = true
	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("Admin service: user verified",
		"user_id", userID.String())

	return updated.Sanitized(), nil
}

// SetRole changes a user's role. The role must be one of the enumerated
// set; the route is superAdmin-gated.
func (s *Admin) SetRole(ctx context.Context, userID uuid.UUID, role model.Role) (model.User, error) {
	if !role.Valid() {
		return model.User{}, fmt.Errorf("%w: unknown role %q", model.ErrInvalidInput, role)
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = role
	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	// Refresh tokens minted under the old role die here, so a demotion
	// takes effect at the next refresh rather than at natural expiry.
	if err := s.sessions.RevokeAllForUser(ctx, userID); err != nil {
		s.logger.Error("Admin service: failed to revoke user sessions after role change",
			"user_id", userID.String(),
			"error", err.Error())
	}

	s.logger.Info("Admin service: role changed",
		"user_id", userID.String(),
		"role", string(role))

	return updated.Sanitized(), nil
}
