package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
)

// MessageService defines direct-messaging operations.
type MessageService interface {
	Send(ctx context.Context, actor model.User, recipientID uuid.UUID, content string) (model.Message, error)
	Conversation(ctx context.Context, actor model.User, peerID uuid.UUID) ([]model.Message, error)
}

// Message handles the direct-message endpoints.
type Message struct {
	messageService MessageService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewMessage creates a new Message handler.
func NewMessage(messageService MessageService, contextManager model.ContextManager, logger *logger.Logger) *Message {
	return &Message{
		messageService: messageService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type sendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipientId" binding:"required"`
	Content     string    `json:"content" binding:"required"`
}

// Send delivers a message from the authenticated user.
func (h *Message) Send(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipientId and content are required"})
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), user, req.RecipientID, req.Content)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(message))
}

// Conversation returns the messages between the authenticated user and a peer.
func (h *Message) Conversation(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	peerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	messages, err := h.messageService.Conversation(c.Request.Context(), user, peerID)
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}
	c.JSON(http.StatusOK, out)
}
