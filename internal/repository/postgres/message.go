package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/model"
)

var _ model.MessageStore = (*MessageRepository)(nil)

type MessageRepository struct {
	db *Connection
}

func NewMessageRepository(db *Connection) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message model.Message) (model.Message, error) {
	const query = `
        INSERT INTO messages (id, sender_id, recipient_id, content, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, sender_id, recipient_id, content, created_at
    `

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}

	var saved model.Message
	err := r.db.QueryRow(ctx, query,
		message.ID, message.SenderID, message.RecipientID, message.Content,
	).Scan(&saved.ID, &saved.SenderID, &saved.RecipientID, &saved.Content, &saved.CreatedAt)
	if err != nil {
		return model.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	return saved, nil
}

func (r *MessageRepository) ListConversation(ctx context.Context, a, b uuid.UUID, limit int) ([]model.Message, error) {
	const query = `
        SELECT id, sender_id, recipient_id, content, created_at
        FROM messages
        WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
        ORDER BY created_at DESC
        LIMIT $3
    `

	rows, err := r.db.Query(ctx, query, a, b, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return messages, nil
}
