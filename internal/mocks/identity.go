package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

// IdentityProvider is a mock of identity.Provider.
type IdentityProvider struct {
	mock.Mock
}

func (m *IdentityProvider) Identify(ctx context.Context, token string) (model.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.User), args.Error(1)
}
