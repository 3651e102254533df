package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxMessageLength bounds message content after sanitization.
const MaxMessageLength = 2000

// MessageStore defines persistence operations for direct messages.
type MessageStore interface {
	Create(ctx context.Context, message Message) (Message, error)
	ListConversation(ctx context.Context, a, b uuid.UUID, limit int) ([]Message, error)
}

// Message is a direct message between two users.
type Message struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	CreatedAt   time.Time
}
