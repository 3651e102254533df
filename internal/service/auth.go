package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
)

const minPasswordLength = 8

// RegisterParams carries a registration request.
type RegisterParams struct {
	Email     string
	Password  string
	Name      string
	Major     *string
	Year      *string
	Residence *string
}

// Session is the result of a successful login, registration or refresh.
type Session struct {
	User         model.User
	AccessToken  string
	RefreshToken string
}

// Auth implements registration, login, logout and session refresh.
type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	sanitizer    *sanitize.Sanitizer
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	sanitizer *sanitize.Sanitizer,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		sanitizer:    sanitizer,
		logger:       logger,
	}
}

// Register creates a student account and opens a session. Every new account
// starts with the student role; promotion is a superAdmin operation.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (Session, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	email, err := normalizeEmail(params.Email)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %s", model.ErrInvalidInput, err)
	}
	if len(params.Password) < minPasswordLength {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", model.ErrInvalidInput, minPasswordLength)
	}
	name := a.sanitizer.Plain(params.Name, 100)
	if name == "" {
		return Session{}, fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		a.logger.Info("Auth service: user already exists",
			"email", email)
		return Session{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		Role:         model.RoleStudent,
		Major:        params.Major,
		Year:         params.Year,
		Residence:    params.Residence,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = a.userStore.Create(ctx, user)
	if err != nil {
		// A concurrent registration can win the race between the existence
		// check and the insert; the store reports that as ErrEmailTaken.
		if errors.Is(err, model.ErrEmailTaken) {
			a.logger.Info("Auth service: user already exists",
				"email", email)
			return Session{}, model.ErrEmailTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registration completed",
		"email", email,
		"user_id", user.ID.String())

	return a.openSession(ctx, user)
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password both come back as ErrInvalidCredentials so the response does not
// reveal which accounts exist.
func (a *Auth) Login(ctx context.Context, email, password string) (Session, error) {
	a.logger.Debug("Auth service: starting user login",
		"email", email)

	normalized, err := normalizeEmail(email)
	if err != nil {
		return Session{}, model.ErrInvalidCredentials
	}

	user, err := a.userStore.GetByEmail(ctx, normalized)
	if errors.Is(err, model.ErrNotFound) {
		// Burn a comparison anyway so the timing of the response does not
		// distinguish unknown emails from wrong passwords.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		a.logger.Info("Auth service: password mismatch",
			"email", normalized)
		return Session{}, model.ErrInvalidCredentials
	}

	a.logger.Info("Auth service: login completed",
		"email", normalized,
		"user_id", user.ID.String())

	return a.openSession(ctx, user)
}

// Refresh exchanges a refresh token for a new session.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	access, refresh, err := a.tokenService.Refresh(ctx, refreshToken)
	if err != nil {
		return Session{}, err
	}

	userID, err := a.tokenService.GetUserID(ctx, access)
	if err != nil {
		return Session{}, fmt.Errorf("failed to parse issued token: %w", err)
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return Session{User: user.Sanitized(), AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the presented refresh token. A missing or invalid token is
// not an error for the caller: the session is gone either way.
func (a *Auth) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if err := a.tokenService.RevokeByToken(ctx, refreshToken); err != nil {
		a.logger.Info("Auth service: logout revocation failed",
			"error", err.Error())
	}
}

func (a *Auth) openSession(ctx context.Context, user model.User) (Session, error) {
	access, refresh, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return Session{User: user.Sanitized(), AccessToken: access, RefreshToken: refresh}, nil
}

// dummyHash is a bcrypt hash of an unguessable value, used to equalize
// login timing when the email is unknown.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("campuscliq-dummy-password"), bcrypt.DefaultCost)
	return h
}()

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errors.New("malformed email address")
	}
	return email, nil
}
