// Package identity resolves the acting user behind a bearer token.
//
// The live provider verifies the token and loads the user from the store.
// The fixture provider returns a fixed user and is meant for local
// development and demos only.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

var (
	// ErrNoToken is returned when no bearer token was presented.
	ErrNoToken = errors.New("missing authorization token")
	// ErrInvalidToken is returned for malformed, tampered or expired tokens.
	// The cause is deliberately not distinguished towards callers.
	ErrInvalidToken = errors.New("invalid authorization token")
)

// TokenResolver resolves the subject user ID of a bearer access token.
type TokenResolver interface {
	GetUserID(ctx context.Context, token string) (uuid.UUID, error)
}

// Provider resolves the user behind a bearer token. The returned user is
// sanitized: it never carries a password hash.
type Provider interface {
	Identify(ctx context.Context, token string) (model.User, error)
}

// Live is the production provider: it verifies the token signature and
// expiry, then loads the current user record.
type Live struct {
	tokens TokenResolver
	users  model.UserStore
}

func NewLive(tokens TokenResolver, users model.UserStore) *Live {
	return &Live{tokens: tokens, users: users}
}

func (p *Live) Identify(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrNoToken
	}

	userID, err := p.tokens.GetUserID(ctx, token)
	if err != nil {
		return model.User{}, ErrInvalidToken
	}
	if userID == uuid.Nil {
		return model.User{}, ErrInvalidToken
	}

	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		// Timeouts and connection failures are transient: the session may
		// still be perfectly valid, so they must not read as a dead token.
		return model.User{}, fmt.Errorf("%w: failed to load user: %w", model.ErrStoreUnavailable, err)
	}

	return user.Sanitized(), nil
}

// Fixture returns the same user for every request, ignoring the token.
// It exists so the frontend can be developed against the API without a
// login flow. Never enable it in production.
type Fixture struct {
	user model.User
}

func NewFixture(user model.User) *Fixture {
	return &Fixture{user: user.Sanitized()}
}

func (p *Fixture) Identify(_ context.Context, _ string) (model.User, error) {
	return p.user, nil
}
