package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campuscliq/campuscliq-server/internal/mocks"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/testutil"
)

type sessionRevokerMock struct {
	mock.Mock
}

func (m *sessionRevokerMock) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestAdmin_SetRole(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	user := model.User{ID: userID, Email: "sam@uni.edu", Role: model.RoleClubAdmin}

	users := &mocks.UserStore{}
	sessions := &sessionRevokerMock{}

	users.On("GetByID", mock.Anything, userID).Return(user, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID == userID && u.Role == model.RoleStudent
	})).Return(model.User{ID: userID, Role: model.RoleStudent}, nil)
	sessions.On("RevokeAllForUser", mock.Anything, userID).Return(nil)

	s := NewAdmin(users, sessions, testutil.MakeNoopLogger())

	updated, err := s.SetRole(ctx, userID, model.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, model.RoleStudent, updated.Role)

	// Sessions minted under the old role must be revoked by the change.
	sessions.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestAdmin_SetRole_UnknownRole(t *testing.T) {
	s := NewAdmin(&mocks.UserStore{}, &sessionRevokerMock{}, testutil.MakeNoopLogger())

	_, err := s.SetRole(t.Context(), uuid.New(), model.Role("dean"))
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestAdmin_VerifyUser(t *testing.T) {
	ctx := t.Context()
	userID := uuid.New()
	user := model.User{ID: userID, Email: "pat@uni.edu", Role: model.RoleStudent}

	users := &mocks.UserStore{}
	users.On("GetByID", mock.Anything, userID).Return(user, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID == userID && u.IsVerified
	})).Return(model.User{ID: userID, IsVerified: true}, nil)

	s := NewAdmin(users, &sessionRevokerMock{}, testutil.MakeNoopLogger())

	updated, err := s.VerifyUser(ctx, userID)
	require.NoError(t, err)
	require.True(t, updated.IsVerified)
}
