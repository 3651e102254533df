package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuscliq/campuscliq-server/internal/mocks"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
	"github.com/campuscliq/campuscliq-server/internal/testutil"
	"github.com/campuscliq/campuscliq-server/internal/token"
)

func newAuthService(userStore model.UserStore, refreshStore model.RefreshTokenStore) (*Auth, *token.JWT) {
	manager := token.NewJWT("secret", 15*time.Minute, time.Hour)
	log := testutil.MakeNoopLogger()
	tokenService := NewTokenService(manager, refreshStore, log)
	return NewAuth(userStore, tokenService, sanitize.New(), log), manager
}

func TestAuth_Register_NewUser(t *testing.T) {
	ctx := t.Context()
	userStore := &mocks.UserStore{}
	refreshStore := &mocks.RefreshTokenStore{}

	userStore.On("GetByEmail", mock.Anything, "new@campus.edu").Return(model.User{}, model.ErrNotFound)
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Email == "new@campus.edu" && u.Role == model.RoleStudent && len(u.PasswordHash) > 0
	})).Return(model.User{ID: uuid.New(), Email: "new@campus.edu", Role: model.RoleStudent}, nil)
	refreshStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	a, _ := newAuthService(userStore, refreshStore)

	session, err := a.Register(ctx, RegisterParams{Email: "New@Campus.edu", Password: "correct horse", Name: "New Student"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, session.User.Role)
	assert.Nil(t, session.User.PasswordHash)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	userStore.AssertExpectations(t)
}

func TestAuth_Register_ExistingEmail(t *testing.T) {
	ctx := t.Context()
	userStore := &mocks.UserStore{}
	refreshStore := &mocks.RefreshTokenStore{}

	userStore.On("GetByEmail", mock.Anything, "taken@campus.edu").Return(model.User{ID: uuid.New()}, nil)

	a, _ := newAuthService(userStore, refreshStore)

	_, err := a.Register(ctx, RegisterParams{Email: "taken@campus.edu", Password: "long enough", Name: "Someone"})
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Register_DuplicateInsertRace(t *testing.T) {
	ctx := t.Context()
	userStore := &mocks.UserStore{}

	// The other registration commits between the existence check and the
	// insert; the unique index reports it through the store.
	userStore.On("GetByEmail", mock.Anything, "raced@campus.edu").Return(model.User{}, model.ErrNotFound)
	userStore.On("Create", mock.Anything, mock.Anything).Return(model.User{}, model.ErrEmailTaken)

	a, _ := newAuthService(userStore, &mocks.RefreshTokenStore{})

	_, err := a.Register(ctx, RegisterParams{Email: "raced@campus.edu", Password: "long enough", Name: "Someone"})
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestAuth_Register_Validation(t *testing.T) {
	ctx := t.Context()
	a, _ := newAuthService(&mocks.UserStore{}, &mocks.RefreshTokenStore{})

	_, err := a.Register(ctx, RegisterParams{Email: "not an email", Password: "long enough", Name: "X"})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = a.Register(ctx, RegisterParams{Email: "ok@campus.edu", Password: "short", Name: "X"})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = a.Register(ctx, RegisterParams{Email: "ok@campus.edu", Password: "long enough", Name: "<script></script>"})
	require.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := t.Context()
	userStore := &mocks.UserStore{}
	refreshStore := &mocks.RefreshTokenStore{}

	hash, err := bcrypt.GenerateFromPassword([]byte("my password"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	userStore.On("GetByEmail", mock.Anything, "student@campus.edu").Return(model.User{
		ID:           userID,
		Email:        "student@campus.edu",
		Role:         model.RoleStudent,
		PasswordHash: hash,
	}, nil)
	refreshStore.On("Create", mock.Anything, mock.Anything).Return(nil)

	a, manager := newAuthService(userStore, refreshStore)

	session, err := a.Login(ctx, "student@campus.edu", "my password")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, session.User.Role)
	assert.Nil(t, session.User.PasswordHash)

	// The issued access token verifies and its subject is the user.
	subject, err := manager.ParseAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	ctx := t.Context()
	userStore := &mocks.UserStore{}

	hash, err := bcrypt.GenerateFromPassword([]byte("right password"), bcrypt.MinCost)
	require.NoError(t, err)

	userStore.On("GetByEmail", mock.Anything, "student@campus.edu").Return(model.User{
		ID:           uuid.New(),
		PasswordHash: hash,
	}, nil)

	a, _ := newAuthService(userStore, &mocks.RefreshTokenStore{})

	_, err = a.Login(ctx, "student@campus.edu", "wrong password")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Login_UnknownEmail_SameError(t *testing.T) {
	ctx := t.Context()
	userStore := &mocks.UserStore{}
	userStore.On("GetByEmail", mock.Anything, "ghost@campus.edu").Return(model.User{}, model.ErrNotFound)

	a, _ := newAuthService(userStore, &mocks.RefreshTokenStore{})

	_, err := a.Login(ctx, "ghost@campus.edu", "whatever password")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_Refresh(t *testing.T) {
	ctx := t.Context()
	userStore := &mocks.UserStore{}
	refreshStore := &mocks.RefreshTokenStore{}

	a, manager := newAuthService(userStore, refreshStore)

	userID := uuid.New()
	refresh, jti, err := manager.GenerateRefreshToken(userID)
	require.NoError(t, err)

	now := time.Now()
	refreshStore.On("GetByJTI", mock.Anything, jti).Return(model.RefreshToken{
		JTI:       jti,
		UserID:    userID,
		TokenHash: hashRefresh(refresh),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil)
	refreshStore.On("RevokeByJTI", mock.Anything, jti).Return(nil)
	refreshStore.On("Create", mock.Anything, mock.Anything).Return(nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Role: model.RoleStudent}, nil)

	session, err := a.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, session.User.ID)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEqual(t, refresh, session.RefreshToken)
}

func TestAuth_Logout(t *testing.T) {
	ctx := t.Context()
	refreshStore := &mocks.RefreshTokenStore{}

	a, manager := newAuthService(&mocks.UserStore{}, refreshStore)

	refresh, jti, err := manager.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	refreshStore.On("RevokeByJTI", mock.Anything, jti).Return(nil)

	a.Logout(ctx, refresh)
	a.Logout(ctx, "")          // no-op
	a.Logout(ctx, "malformed") // swallowed

	refreshStore.AssertExpectations(t)
}
