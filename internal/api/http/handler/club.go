package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campuscliq/campuscliq-server/internal/logger"
	"github.com/campuscliq/campuscliq-server/internal/model"
)

// ClubService defines club and membership operations.
type ClubService interface {
	List(ctx context.Context) ([]model.Club, error)
	Get(ctx context.Context, id uuid.UUID) (model.Club, error)
	Create(ctx context.Context, actor model.User, name, description string) (model.Club, error)
	Join(ctx context.Context, actor model.User, clubID uuid.UUID) error
	Leave(ctx context.Context, actor model.User, clubID uuid.UUID) error
}

// PostsByClubService lists a club's posts.
type PostsByClubService interface {
	ListByClub(ctx context.Context, clubID uuid.UUID) ([]model.Post, error)
}

// Club handles the club endpoints.
type Club struct {
	clubService    ClubService
	postService    PostsByClubService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewClub creates a new Club handler.
func NewClub(
	clubService ClubService,
	postService PostsByClubService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Club {
	return &Club{
		clubService:    clubService,
		postService:    postService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// List returns every club.
func (h *Club) List(c *gin.Context) {
	clubs, err := h.clubService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Club handler: failed to list clubs", "error", err.Error())
		handleError(c, err)
		return
	}

	out := make([]clubResponse, 0, len(clubs))
	for _, club := range clubs {
		out = append(out, toClubResponse(club))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one club.
func (h *Club) Get(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	club, err := h.clubService.Get(c.Request.Context(), clubID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClubResponse(club))
}

// Posts returns a club's posts.
func (h *Club) Posts(c *gin.Context) {
	clubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	posts, err := h.postService.ListByClub(c.Request.Context(), clubID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPostResponses(posts))
}

type createClubRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create registers a new club owned by the authenticated user.
func (h *Club) Create(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	var req createClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	club, err := h.clubService.Create(c.Request.Context(), user, req.Name, req.Description)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toClubResponse(club))
}

// Join adds the authenticated user to a club.
func (h *Club) Join(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	clubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	if err := h.clubService.Join(c.Request.Context(), user, clubID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Leave removes the authenticated user from a club.
func (h *Club) Leave(c *gin.Context) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
		return
	}

	clubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid club id"})
		return
	}

	if err := h.clubService.Leave(c.Request.Context(), user, clubID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
