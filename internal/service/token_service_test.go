package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campuscliq/campuscliq-server/internal/mocks"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/testutil"
	"github.com/campuscliq/campuscliq-server/internal/token"
)

func TestTokenService_Issue(t *testing.T) {
	ctx := t.Context()
	store := &mocks.RefreshTokenStore{}
	manager := token.NewJWT("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	store.On("Create", mock.Anything, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.UserID == userID && rt.JTI != "" && len(rt.TokenHash) == 32
	})).Return(nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	access, refresh, err := s.Issue(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	got, err := s.GetUserID(ctx, access)
	require.NoError(t, err)
	require.Equal(t, userID, got)

	store.AssertExpectations(t)
}

func TestTokenService_Refresh_Rotates(t *testing.T) {
	ctx := t.Context()
	store := &mocks.RefreshTokenStore{}
	manager := token.NewJWT("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	refresh, jti, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	now := time.Now()
	store.On("GetByJTI", mock.Anything, jti).Return(model.RefreshToken{
		ID:        uuid.New(),
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil)
	store.On("RevokeByJTI", mock.Anything, jti).Return(nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.RotatedFromJTI != nil && *rt.RotatedFromJTI == jti
	})).Return(nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	newAccess, newRefresh, err := s.Refresh(ctx, refresh)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	require.NotEqual(t, refresh, newRefresh)

	store.AssertExpectations(t)
}

func TestTokenService_Refresh_RevokedTokenKillsChain(t *testing.T) {
	ctx := t.Context()
	store := &mocks.RefreshTokenStore{}
	manager := token.NewJWT("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	refresh, jti, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	now := time.Now()
	revokedAt := now.Add(-time.Minute)
	store.On("GetByJTI", mock.Anything, jti).Return(model.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now.Add(-time.Hour),
		ExpiresAt: now.Add(time.Hour),
		RevokedAt: &revokedAt,
	}, nil)
	store.On("CountRotations", mock.Anything, jti).Return(int64(3), nil)
	store.On("RevokeAllByUser", mock.Anything, userID).Return(int64(2), nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	_, _, err = s.Refresh(ctx, refresh)
	require.ErrorIs(t, err, model.ErrTokenRevoked)

	store.AssertExpectations(t)
}

func TestTokenService_PurgeExpired(t *testing.T) {
	ctx := t.Context()
	store := &mocks.RefreshTokenStore{}
	manager := token.NewJWT("secret", 15*time.Minute, time.Hour)

	store.On("DeleteExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(5), nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	deleted, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), deleted)

	store.AssertExpectations(t)
}

func TestTokenService_Refresh_HashMismatch(t *testing.T) {
	ctx := t.Context()
	store := &mocks.RefreshTokenStore{}
	manager := token.NewJWT("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	refresh, jti, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	now := time.Now()
	store.On("GetByJTI", mock.Anything, jti).Return(model.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		TokenHash: []byte("some other token hash"),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	_, _, err = s.Refresh(ctx, refresh)
	require.ErrorIs(t, err, model.ErrTokenMismatch)
}

func TestTokenService_Refresh_Expired(t *testing.T) {
	ctx := t.Context()
	store := &mocks.RefreshTokenStore{}
	manager := token.NewJWT("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	refresh, jti, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	now := time.Now()
	store.On("GetByJTI", mock.Anything, jti).Return(model.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}, nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())

	_, _, err = s.Refresh(ctx, refresh)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestTokenService_RevokeByToken(t *testing.T) {
	ctx := t.Context()
	store := &mocks.RefreshTokenStore{}
	manager := token.NewJWT("secret", 15*time.Minute, time.Hour)
	userID := uuid.New()

	refresh, jti, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	store.On("RevokeByJTI", mock.Anything, jti).Return(nil)

	s := NewTokenService(manager, store, testutil.MakeNoopLogger())
	require.NoError(t, s.RevokeByToken(ctx, refresh))

	store.AssertExpectations(t)
}
