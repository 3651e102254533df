// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

// UserStore is a mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// RefreshTokenStore is a mock of model.RefreshTokenStore.
type RefreshTokenStore struct {
	mock.Mock
}

func (m *RefreshTokenStore) Create(ctx context.Context, token model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenStore) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(model.RefreshToken), args.Error(1)
}

func (m *RefreshTokenStore) RevokeByJTI(ctx context.Context, jti string) error {
	args := m.Called(ctx, jti)
	return args.Error(0)
}

func (m *RefreshTokenStore) RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RefreshTokenStore) CountRotations(ctx context.Context, jti string) (int64, error) {
	args := m.Called(ctx, jti)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RefreshTokenStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

// PostStore is a mock of model.PostStore.
type PostStore struct {
	mock.Mock
}

func (m *PostStore) Create(ctx context.Context, post model.Post) (model.Post, error) {
	args := m.Called(ctx, post)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *PostStore) ListFeed(ctx context.Context, limit int) ([]model.Post, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *PostStore) ListByClub(ctx context.Context, clubID uuid.UUID, limit int) ([]model.Post, error) {
	args := m.Called(ctx, clubID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ClubStore is a mock of model.ClubStore.
type ClubStore struct {
	mock.Mock
}

func (m *ClubStore) Create(ctx context.Context, club model.Club) (model.Club, error) {
	args := m.Called(ctx, club)
	return args.Get(0).(model.Club), args.Error(1)
}

func (m *ClubStore) GetByID(ctx context.Context, id uuid.UUID) (model.Club, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Club), args.Error(1)
}

func (m *ClubStore) List(ctx context.Context) ([]model.Club, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Club), args.Error(1)
}

func (m *ClubStore) AddMember(ctx context.Context, clubID, userID uuid.UUID) error {
	args := m.Called(ctx, clubID, userID)
	return args.Error(0)
}

func (m *ClubStore) RemoveMember(ctx context.Context, clubID, userID uuid.UUID) error {
	args := m.Called(ctx, clubID, userID)
	return args.Error(0)
}

func (m *ClubStore) IsMember(ctx context.Context, clubID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, clubID, userID)
	return args.Bool(0), args.Error(1)
}

// EventStore is a mock of model.EventStore.
type EventStore struct {
	mock.Mock
}

func (m *EventStore) Create(ctx context.Context, event model.Event) (model.Event, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *EventStore) GetByID(ctx context.Context, id uuid.UUID) (model.Event, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Event), args.Error(1)
}

func (m *EventStore) ListUpcoming(ctx context.Context, after time.Time) ([]model.Event, error) {
	args := m.Called(ctx, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *EventStore) SetRSVP(ctx context.Context, eventID, userID uuid.UUID, status model.RSVPStatus) error {
	args := m.Called(ctx, eventID, userID, status)
	return args.Error(0)
}

// MessageStore is a mock of model.MessageStore.
type MessageStore struct {
	mock.Mock
}

func (m *MessageStore) Create(ctx context.Context, message model.Message) (model.Message, error) {
	args := m.Called(ctx, message)
	return args.Get(0).(model.Message), args.Error(1)
}

func (m *MessageStore) ListConversation(ctx context.Context, a, b uuid.UUID, limit int) ([]model.Message, error) {
	args := m.Called(ctx, a, b, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}
