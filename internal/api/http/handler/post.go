package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
)

// PostService defines feed operations.
type PostService interface {
	ListFeed(ctx context.Context) ([]model.Post, error)
	ListByClub(ctx context.Context, clubID uuid.UUID) ([]model.Post, error)
	Create(ctx context.Context, actor model.User, content string, clubID *uuid.UUID) (model.Post, error)
	Delete(ctx context.Context, actor model.User, postID uuid.UUID) error
}

// Post handles the feed endpoints.
type Post struct {
	postService    PostService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(postService PostService, contextManager model.ContextManager, logger *logger.Logger) *Post {
	return &Post{
		postService:    postService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// ListFeed returns the campus-wide feed.
func (h *Post) ListFeed(c *gin.Context) {
	posts, err := h.postService.ListFeed(c.Request.Context())
	if err != nil {
		h.logger.Error("Post handler: failed to list feed", "error", err.Error())
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponses(posts))
}

type createPostRequest struct {
	Content string     `json:"content" binding:"required"`
	ClubID  *uuid.UUID `json:"clubId"`
}

// Create publishes a post by the authenticated user.
func (h *Post) Create(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), user, req.Content, req.ClubID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post))
}

// Delete removes a post if the user is its author or a superAdmin.
func (h *Post) Delete(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postService.Delete(c.Request.Context(), user, postID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
