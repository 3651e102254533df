package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
	"github.com/campuscliq/campuscliq-server/internal/sanitize"
)

const conversationLimit = 100

// Message implements peer-to-peer messaging.
type Message struct {
	messageStore model.MessageStore
	userStore    model.UserStore
	sanitizer    *sanitize.Sanitizer
	logger       *logger.Logger
}

func NewMessage(
	messageStore model.MessageStore,
	userStore model.UserStore,
	sanitizer *sanitize.Sanitizer,
	logger *logger.Logger,
) *Message {
	return &Message{
		messageStore: messageStore,
		userStore:    userStore,
		sanitizer:    sanitizer,
		logger:       logger,
	}
}

// Send delivers a message from the acting user to a peer.
func (s *Message) Send(ctx context.Context, actor model.User, recipientID uuid.UUID, content string) (model.Message, error) {
	if recipientID == actor.ID {
		return model.Message{}, fmt.Errorf("%w: cannot message yourself", model.ErrInvalidInput)
	}

	content = s.sanitizer.Content(content, model.MaxMessageLength)
	if content == "" {
		return model.Message{}, fmt.Errorf("%w: content is required", model.ErrInvalidInput)
	}

	if _, err := s.userStore.GetByID(ctx, recipientID); err != nil {
		return model.Message{}, fmt.Errorf("failed to get recipient: %w", err)
	}

	message, err := s.messageStore.Create(ctx, model.Message{
		ID:          uuid.New(),
		SenderID:    actor.ID,
		RecipientID: recipientID,
		Content:     content,
	})
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// Conversation returns the newest messages between the acting user and a peer.
func (s *Message) Conversation(ctx context.Context, actor model.User, peerID uuid.UUID) ([]model.Message, error) {
	messages, err := s.messageStore.ListConversation(ctx, actor.ID, peerID, conversationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	return messages, nil
}
