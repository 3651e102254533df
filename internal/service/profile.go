package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
)

// MaxAvatarSize bounds avatar uploads.
const MaxAvatarSize = 5 << 20

// Profile implements user profile operations, including avatar storage.
type Profile struct {
	userStore model.UserStore
	storage   model.Storage
	sanitizer *sanitize.Sanitizer
	logger    *logger.Logger
}

func NewProfile(
	userStore model.UserStore,
	storage model.Storage,
	sanitizer *sanitize.Sanitizer,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		userStore: userStore,
		storage:   storage,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// UpdateProfileParams carries the self-service profile fields. Role and
// verification are deliberately absent: those change only through admin
// operations.
type UpdateProfileParams struct {
	Name      *string
	Major     *string
	Year      *string
	Residence *string
}

func (s *Profile) Get(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.Sanitized(), nil
}

func (s *Profile) Update(ctx context.Context, actor model.User, params UpdateProfileParams) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, actor.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if params.Name != nil {
		name := s.sanitizer.Plain(*params.Name, 100)
		if name == "" {
			return model.User{}, fmt.Errorf("%w: name cannot be empty", model.ErrInvalidInput)
		}
		user.Name = name
	}
	if params.Major != nil {
		major := s.sanitizer.Plain(*params.Major, 100)
		user.Major = &major
	}
	if params.Year != nil {
		year := s.sanitizer.Plain(*params.Year, 20)
		user.Year = &year
	}
	if params.Residence != nil {
		residence := s.sanitizer.Plain(*params.Residence, 100)
		user.Residence = &residence
	}

	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated.Sanitized(), nil
}

// UploadAvatar stores the image and records its key on the user row.
func (s *Profile) UploadAvatar(ctx context.Context, actor model.User, reader io.Reader, size int64, contentType string) (model.User, error) {
	if size <= 0 || size > MaxAvatarSize {
		return model.User{}, fmt.Errorf("%w: avatar must be between 1 byte and %d bytes", model.ErrInvalidInput, MaxAvatarSize)
	}

	user, err := s.userStore.GetByID(ctx, actor.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	key := fmt.Sprintf("avatars/%s/%s", actor.ID, uuid.NewString())
	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	oldKey := user.AvatarKey
	user.AvatarKey = &key

	updated, err := s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if oldKey != nil {
		if err := s.storage.Delete(ctx, *oldKey); err != nil {
			s.logger.Info("Profile service: failed to delete old avatar",
				"key", *oldKey,
				"error", err.Error())
		}
	}

	s.logger.Info("Profile service: avatar updated",
		"user_id", actor.ID.String(),
		"key", key)

	return updated.Sanitized(), nil
}

// Avatar streams a stored avatar object.
func (s *Profile) Avatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.AvatarKey == nil {
		return nil, model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, *user.AvatarKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}
	return reader, nil
}
